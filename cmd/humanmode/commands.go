package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/kalambet/humanmode/internal/catalog"
	"github.com/kalambet/humanmode/internal/config"
	"github.com/kalambet/humanmode/internal/demo"
	"github.com/kalambet/humanmode/internal/profile"
	"github.com/kalambet/humanmode/internal/setup"
	"github.com/kalambet/humanmode/internal/voice"
)

// --- setup ---

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Walk through the profile setup steps",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}
		st, err := fetchSetupStatus(cmd.Context(), client)
		if err != nil {
			return err
		}
		printSetupStatus(cmd.OutOrStdout(), st)
		return nil
	},
}

type recordingInfo struct {
	ID             string `json:"id"`
	ElapsedSeconds int    `json:"elapsed_seconds"`
	Clock          string `json:"clock"`
	MaxSeconds     int    `json:"max_seconds"`
	Done           bool   `json:"done"`
}

var setupVoiceCmd = &cobra.Command{
	Use:   "voice",
	Short: "Record a voice sample and analyze it",
	Long: `Record a voice sample and analyze it.

Recording runs until you press Enter, --seconds elapse, or the server's
recording limit is reached. The analysis progress is streamed as it runs.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		seconds, _ := cmd.Flags().GetInt("seconds")
		if seconds < 0 {
			return fmt.Errorf("--seconds must not be negative")
		}

		client, err := newAPIClient()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		resp, err := client.post(ctx, "/setup/voice/recordings", nil)
		if err != nil {
			return err
		}
		var rec recordingInfo
		if err := decodeJSON(resp, &rec); err != nil {
			return err
		}

		limit := time.Duration(rec.MaxSeconds) * time.Second
		if seconds > 0 && time.Duration(seconds)*time.Second < limit {
			limit = time.Duration(seconds) * time.Second
		}
		var enter <-chan struct{}
		if seconds == 0 {
			printStep("Recording... press Enter to stop (max %s)", voice.FormatClock(rec.MaxSeconds))
			enter = waitForEnter(cmd.InOrStdin())
		} else {
			printStep("Recording for %s", voice.FormatClock(int(limit/time.Second)))
		}
		if err := recordUntil(ctx, limit, enter, func(elapsed int) {
			fmt.Fprintf(os.Stderr, "\r  %s %s / %s", colorize(colorRed, "●"), voice.FormatClock(elapsed), voice.FormatClock(rec.MaxSeconds))
		}); err != nil {
			return err
		}
		fmt.Fprintln(os.Stderr)

		printStep("Analyzing your voice...")
		var patterns profile.VoicePatterns
		err = client.stream(ctx, http.MethodPost, "/setup/voice/recordings/"+url.PathEscape(rec.ID)+"/stop", func(name string, data []byte) error {
			switch name {
			case "progress":
				var st voice.Stage
				if err := json.Unmarshal(data, &st); err != nil {
					return err
				}
				fmt.Fprintf(os.Stderr, "\r  %s %3d%% %-34s", progressBar(st.Progress), st.Progress, st.Message)
			case "result":
				return json.Unmarshal(data, &patterns)
			case "error":
				var e struct {
					Message string `json:"message"`
				}
				json.Unmarshal(data, &e) //nolint:errcheck
				return fmt.Errorf("voice analysis failed: %s", e.Message)
			}
			return nil
		})
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return err
		}
		if len(patterns.FillerWords) == 0 {
			return fmt.Errorf("voice analysis ended without a result")
		}

		printVoicePatterns(cmd.OutOrStdout(), patterns)
		printSuccess("Voice profile saved. Next: humanmode setup skills")
		return nil
	},
}

// recordUntil ticks once a second until limit passes, enter fires or ctx
// ends.
func recordUntil(ctx context.Context, limit time.Duration, enter <-chan struct{}, tick func(elapsed int)) error {
	start := time.Now()
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	deadline := time.NewTimer(limit)
	defer deadline.Stop()

	tick(0)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-enter:
			return nil
		case <-deadline.C:
			tick(int(limit / time.Second))
			return nil
		case <-ticker.C:
			tick(int(time.Since(start) / time.Second))
		}
	}
}

func waitForEnter(r io.Reader) <-chan struct{} {
	ch := make(chan struct{})
	go func() {
		bufio.NewReader(r).ReadString('\n') //nolint:errcheck
		close(ch)
	}()
	return ch
}

func printVoicePatterns(w io.Writer, v profile.VoicePatterns) {
	fmt.Fprintln(w, colorize(colorBold, "Voice profile"))
	fmt.Fprintf(w, "  Vocabulary:     %s\n", v.VocabularyLevel)
	fmt.Fprintf(w, "  Sentences:      %s\n", v.SentenceLength)
	fmt.Fprintf(w, "  Tone:           %s\n", v.Tone)
	fmt.Fprintf(w, "  Pace:           %s\n", v.SpeakingPace)
	fmt.Fprintf(w, "  Filler words:   %s\n", strings.Join(v.FillerWords, ", "))
	fmt.Fprintf(w, "  Common phrases: %s\n", strings.Join(v.CommonPhrases, ", "))
}

var setupSkillsCmd = &cobra.Command{
	Use:   "skills",
	Short: "Rate your skill areas",
	Long: `Rate your skill areas as beginner, intermediate or expert.

Unrated areas keep their saved (or default) level.

Examples:
  humanmode setup skills --react expert --machine-learning beginner
  humanmode setup skills --set golang=expert`,
	RunE: func(cmd *cobra.Command, args []string) error {
		overrides := map[string]string{}
		for _, a := range profile.SkillAreas() {
			if v, _ := cmd.Flags().GetString(skillFlagName(a.Key)); v != "" {
				overrides[a.Key] = v
			}
		}
		extra, _ := cmd.Flags().GetStringToString("set")
		for k, v := range extra {
			overrides[k] = v
		}
		for area, level := range overrides {
			if _, err := profile.ParseSkillLevel(level); err != nil {
				return fmt.Errorf("%s: %w", area, err)
			}
		}

		client, err := newAPIClient()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		resp, err := client.get(ctx, "/setup/skills")
		if err != nil {
			return err
		}
		var current struct {
			Skills map[string]string `json:"skills"`
		}
		if err := decodeJSON(resp, &current); err != nil {
			return err
		}
		skills := current.Skills
		if skills == nil {
			skills = map[string]string{}
		}
		for area, level := range overrides {
			l, _ := profile.ParseSkillLevel(level)
			skills[area] = string(l)
		}

		resp, err = client.put(ctx, "/setup/skills", map[string]any{"skills": skills})
		if err != nil {
			return err
		}
		var saved struct {
			Skills profile.SkillSet `json:"skills"`
		}
		if err := decodeJSON(resp, &saved); err != nil {
			return err
		}

		printSkills(cmd.OutOrStdout(), saved.Skills)
		printSuccess("Skills saved. Next: humanmode setup context")
		return nil
	},
}

// skillFlagName turns a skill area key into a flag name ("machineLearning"
// becomes "machine-learning").
func skillFlagName(area string) string {
	var b strings.Builder
	for i, r := range area {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('-')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

func printSkills(w io.Writer, skills profile.SkillSet) {
	fmt.Fprintln(w, colorize(colorBold, "Skills"))
	seen := map[string]bool{}
	for _, a := range profile.SkillAreas() {
		seen[a.Key] = true
		if l, ok := skills[a.Key]; ok {
			fmt.Fprintf(w, "  %-22s %s\n", a.Label, l.Label())
		}
	}
	for area, l := range skills {
		if !seen[area] {
			fmt.Fprintf(w, "  %-22s %s\n", area, l.Label())
		}
	}
}

var setupContextCmd = &cobra.Command{
	Use:   "context",
	Short: "Describe the interview you are preparing for",
	RunE: func(cmd *cobra.Command, args []string) error {
		company, _ := cmd.Flags().GetString("company")
		stage, _ := cmd.Flags().GetString("stage")
		vibe, _ := cmd.Flags().GetString("vibe")

		if vibe != "" {
			if _, err := profile.ParseTone(vibe); err != nil {
				return fmt.Errorf("--vibe: %w", err)
			}
		}

		client, err := newAPIClient()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		resp, err := client.get(ctx, "/setup/context")
		if err != nil {
			return err
		}
		var ic map[string]string
		if err := decodeJSON(resp, &ic); err != nil {
			return err
		}
		if company != "" {
			ic["companyType"] = strings.ToLower(company)
		}
		if stage != "" {
			ic["interviewStage"] = strings.ReplaceAll(strings.ToLower(stage), "-", "_")
		}
		if vibe != "" {
			ic["desiredVibe"] = strings.ToLower(vibe)
		}

		resp, err = client.put(ctx, "/setup/context", ic)
		if err != nil {
			return err
		}
		if err := decodeJSON(resp, nil); err != nil {
			return err
		}

		var saved profile.InterviewContext
		saved.CompanyType = profile.CompanyType(ic["companyType"])
		saved.InterviewStage = profile.InterviewStage(ic["interviewStage"])
		saved.DesiredVibe = profile.Tone(ic["desiredVibe"])
		fmt.Fprintln(cmd.OutOrStdout(), colorize(colorBold, "Interview context"))
		fmt.Fprintf(cmd.OutOrStdout(), "  Company: %s\n  Stage:   %s\n  Vibe:    %s\n",
			saved.CompanyType.Label(), saved.InterviewStage.Label(), saved.DesiredVibe.Label())
		printSuccess("Setup complete. Try: humanmode demo")
		return nil
	},
}

func fetchSetupStatus(ctx context.Context, client *apiClient) (setup.Status, error) {
	resp, err := client.get(ctx, "/setup/status")
	if err != nil {
		return setup.Status{}, err
	}
	var st setup.Status
	err = decodeJSON(resp, &st)
	return st, err
}

func init() {
	setupVoiceCmd.Flags().Int("seconds", 0, "record for this many seconds instead of waiting for Enter")

	for _, a := range profile.SkillAreas() {
		setupSkillsCmd.Flags().String(skillFlagName(a.Key), "", fmt.Sprintf("level for %s", a.Label))
	}
	setupSkillsCmd.Flags().StringToString("set", nil, "level for any skill area, as area=level")

	setupContextCmd.Flags().String("company", "", "startup, midsize or enterprise")
	setupContextCmd.Flags().String("stage", "", "phone_screen, technical or final_round")
	setupContextCmd.Flags().String("vibe", "", "casual, professional or formal")

	setupCmd.AddCommand(setupVoiceCmd)
	setupCmd.AddCommand(setupSkillsCmd)
	setupCmd.AddCommand(setupContextCmd)
}

// --- demo ---

var demoCmd = &cobra.Command{
	Use:   "demo [question-id]",
	Short: "Compare generic and personalized answers",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		var comparisons []demo.Comparison
		if len(args) == 1 {
			printStep("Generating your answer...")
			resp, err := client.get(ctx, "/demo/questions/"+url.PathEscape(args[0]))
			if err != nil {
				return err
			}
			var c demo.Comparison
			if err := decodeJSON(resp, &c); err != nil {
				return demoHint(err)
			}
			comparisons = append(comparisons, c)
		} else {
			printStep("Generating your answers...")
			resp, err := client.get(ctx, "/demo/comparisons")
			if err != nil {
				return err
			}
			if err := decodeJSON(resp, &comparisons); err != nil {
				return demoHint(err)
			}
		}

		out := cmd.OutOrStdout()
		for i, c := range comparisons {
			if i > 0 {
				fmt.Fprintln(out, colorize(colorDim, strings.Repeat("─", 78)))
			}
			printComparison(out, c)
		}
		return nil
	},
}

// demoHint points the user at the missing setup step.
func demoHint(err error) error {
	var apiErr *apiError
	if errors.As(err, &apiErr) && apiErr.Type == "setup_incomplete" {
		return fmt.Errorf("setup is not finished; run `humanmode setup %s` first", apiErr.NextStep)
	}
	return err
}

func printComparison(w io.Writer, c demo.Comparison) {
	fmt.Fprintf(w, "%s %s\n\n", colorize(colorBold, "Q:"), c.Question)
	printSection(w, colorize(colorRed, "Generic AI answer"), c.Generic)
	printList(w, "Why it sounds generic", "✗", c.GenericFlags)
	fmt.Fprintln(w)
	printSection(w, colorize(colorGreen, "Your answer"), c.Personalized)
	printList(w, "Why it sounds like you", "✓", c.Highlights)
	fmt.Fprintln(w)
	fmt.Fprintln(w, colorize(colorBold, "How we adapted it"))
	for _, a := range c.Adaptations {
		fmt.Fprintf(w, "  %s: %s\n", colorize(colorCyan, a.Title), a.Detail)
	}
}

// --- questions ---

var questionsCmd = &cobra.Command{
	Use:   "questions [question-id]",
	Short: "List catalog questions or show one answer",
	Long: `List catalog questions, or show the answer for one question.

With --skill and --tone the matching personalized answer is shown,
otherwise the generic one.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		if len(args) == 0 {
			resp, err := client.get(ctx, "/questions")
			if err != nil {
				return err
			}
			var qs []catalog.Question
			if err := decodeJSON(resp, &qs); err != nil {
				return err
			}
			for _, q := range qs {
				fmt.Fprintf(out, "%-20s %-22s %s\n", colorize(colorCyan, q.ID), q.Category, q.Question)
			}
			return nil
		}

		skill, _ := cmd.Flags().GetString("skill")
		tone, _ := cmd.Flags().GetString("tone")
		path := "/responses/" + url.PathEscape(args[0]) + "/generic"
		if skill != "" || tone != "" {
			q := url.Values{}
			q.Set("skill", skill)
			q.Set("tone", tone)
			path = "/responses/" + url.PathEscape(args[0]) + "?" + q.Encode()
		}
		resp, err := client.get(ctx, path)
		if err != nil {
			return err
		}
		var r struct {
			Response string `json:"response"`
		}
		if err := decodeJSON(resp, &r); err != nil {
			return err
		}
		fmt.Fprintln(out, wrap(r.Response, 78))
		return nil
	},
}

func init() {
	questionsCmd.Flags().String("skill", "", "beginner, intermediate or expert")
	questionsCmd.Flags().String("tone", "", "casual, professional or formal")
}

// --- profile ---

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show, export or import the profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current profile as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.get(cmd.Context(), "/profile")
		if err != nil {
			return err
		}

		var p any
		if err := decodeJSON(resp, &p); err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(p)
	},
}

var profileExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the profile as a JSON document",
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.get(cmd.Context(), "/profile/export")
		if err != nil {
			return err
		}
		var doc json.RawMessage
		if err := decodeJSON(resp, &doc); err != nil {
			return err
		}
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return err
		}
		data = append(data, '\n')

		if output == "" {
			_, err := cmd.OutOrStdout().Write(data)
			return err
		}
		if err := os.WriteFile(output, data, 0o600); err != nil {
			return fmt.Errorf("writing %s: %w", output, err)
		}
		printSuccess("Profile exported to %s", output)
		return nil
	},
}

var profileImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the profile with an exported document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading %s: %w", args[0], err)
		}
		if !json.Valid(data) {
			return fmt.Errorf("%s is not valid JSON", args[0])
		}

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.put(cmd.Context(), "/profile/import", json.RawMessage(data))
		if err != nil {
			return err
		}
		var st setup.Status
		if err := decodeJSON(resp, &st); err != nil {
			return err
		}
		printSuccess("Profile imported")
		printSetupStatus(cmd.OutOrStdout(), st)
		return nil
	},
}

func init() {
	profileExportCmd.Flags().StringP("output", "o", "", "output file path (default: stdout)")
	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileExportCmd)
	profileCmd.AddCommand(profileImportCmd)
}

// --- reset ---

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the stored profile and start setup over",
	RunE: func(cmd *cobra.Command, args []string) error {
		confirm, _ := cmd.Flags().GetBool("confirm")
		if !confirm {
			printWarning("This will delete your voice, skills and interview context. Use --confirm to proceed.")
			return nil
		}

		client, err := newAPIClient()
		if err != nil {
			return err
		}
		resp, err := client.delete(cmd.Context(), "/setup")
		if err != nil {
			return err
		}
		if err := decodeJSON(resp, nil); err != nil {
			return err
		}
		printSuccess("Profile reset. Start again with: humanmode setup voice")
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("confirm", false, "confirm profile reset")
}

// --- config ---

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or update configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		for _, k := range config.ShowAll(cfg) {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s = %s %s\n", colorize(colorBold, k.Key), k.Value, colorize(colorDim, "("+k.EnvVar+")"))
		}
		tokenState := "not set"
		if cfg.API.Token != "" {
			tokenState = "set"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "  %s = %s\n", colorize(colorBold, "api.token"), tokenState)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long:  "Set a configuration value. Valid keys: " + strings.Join(config.ValidKeys(), ", "),
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]

		if err := config.SetKey(key, value); err != nil {
			return err
		}

		printSuccess("Set %s = %s", key, value)
		return nil
	},
}

var configUnsetCmd = &cobra.Command{
	Use:   "unset <key>",
	Short: "Remove a configuration value so its default applies",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.UnsetKey(args[0]); err != nil {
			return err
		}
		printSuccess("Unset %s", args[0])
		return nil
	},
}

var configSetTokenCmd = &cobra.Command{
	Use:   "set-token [token]",
	Short: "Store the API bearer token in the platform secret store",
	Long: `Store the API bearer token in the platform secret store.

Without an argument the token is read from the first line of stdin.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var token string
		if len(args) == 1 {
			token = args[0]
		} else {
			line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if err != nil && !errors.Is(err, io.EOF) {
				return fmt.Errorf("reading token: %w", err)
			}
			token = line
		}
		token = strings.TrimSpace(token)

		if err := config.SetToken(token); err != nil {
			return err
		}
		printSuccess("API token stored")
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configUnsetCmd)
	configCmd.AddCommand(configSetTokenCmd)
}
