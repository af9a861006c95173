package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/kalambet/humanmode/internal/api"
	"github.com/kalambet/humanmode/internal/demo"
	"github.com/kalambet/humanmode/internal/profile"
	"github.com/kalambet/humanmode/internal/setup"
	"github.com/kalambet/humanmode/internal/storage"
	"github.com/kalambet/humanmode/internal/voice"
)

type recordedRequest struct {
	Method string
	Path   string
	Body   string
	Auth   string
}

type testServer struct {
	server   *httptest.Server
	requests []recordedRequest
}

func newTestServer(t *testing.T, responses map[string]string) *testServer {
	t.Helper()
	ts := &testServer{}

	ts.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body bytes.Buffer
		body.ReadFrom(r.Body)

		ts.requests = append(ts.requests, recordedRequest{
			Method: r.Method,
			Path:   r.URL.RequestURI(),
			Body:   body.String(),
			Auth:   r.Header.Get("Authorization"),
		})

		key := r.Method + " " + r.URL.Path
		if resp, ok := responses[key]; ok {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(resp))
			return
		}

		w.WriteHeader(404)
		w.Write([]byte(`{"error":{"message":"not found","type":"not_found_error"}}`))
	}))

	t.Cleanup(ts.server.Close)
	return ts
}

func (ts *testServer) client() *apiClient {
	return &apiClient{
		baseURL:    ts.server.URL,
		token:      "test-token",
		httpClient: ts.server.Client(),
	}
}

var ctx = context.Background()

// useClient points the commands at c for the duration of the test.
func useClient(t *testing.T, c *apiClient) {
	t.Helper()
	orig := newAPIClient
	newAPIClient = func() (*apiClient, error) { return c, nil }
	t.Cleanup(func() { newAPIClient = orig })
}

// newAppServer serves the real application handler over an in-memory store.
func newAppServer(t *testing.T) *apiClient {
	t.Helper()
	store := storage.NewMemoryStore()
	t.Cleanup(func() { store.Close() })

	mgr := profile.NewManager(store)
	h := api.NewAppHandler(api.AppDeps{
		Profiles: mgr,
		Flow:     setup.NewFlow(mgr, setup.NewRecorder(setup.DefaultRecordingLimit), voice.NewAnalyzer(voice.NewRand(9), 0)),
		Demo:     demo.NewService(mgr, 0),
		Token:    "test-token",
	})
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	return &apiClient{
		baseURL:    srv.URL,
		token:      "test-token",
		httpClient: srv.Client(),
	}
}

// runCmd executes the root command with args and returns its stdout. Flags
// of every command are reset first since cobra keeps them between runs.
func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd.Commands())

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	}()

	err := rootCmd.ExecuteContext(ctx)
	return out.String(), err
}

func resetFlags(cmds []*cobra.Command) {
	for _, c := range cmds {
		c.Flags().VisitAll(func(f *pflag.Flag) {
			if f.Changed {
				f.Value.Set(f.DefValue) //nolint:errcheck
				f.Changed = false
			}
		})
		resetFlags(c.Commands())
	}
}

func TestReadEvents(t *testing.T) {
	stream := "event: progress\ndata: {\"progress\":15}\n\n" +
		": keepalive\n\n" +
		"event: result\ndata: {\"tone\":\"calm\"}\n\n"

	type ev struct{ name, data string }
	var got []ev
	err := readEvents(strings.NewReader(stream), func(name string, data []byte) error {
		got = append(got, ev{name, string(data)})
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 events, got %d: %v", len(got), got)
	}
	if got[0].name != "progress" || got[0].data != `{"progress":15}` {
		t.Errorf("first event = %+v", got[0])
	}
	if got[1].name != "result" {
		t.Errorf("second event = %+v", got[1])
	}
}

func TestReadEvents_CallbackErrorStops(t *testing.T) {
	stream := "event: a\ndata: 1\n\nevent: b\ndata: 2\n\n"
	calls := 0
	stop := errors.New("stop")
	err := readEvents(strings.NewReader(stream), func(string, []byte) error {
		calls++
		return stop
	})
	if !errors.Is(err, stop) {
		t.Errorf("error = %v, want stop", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestDecodeJSON_APIError(t *testing.T) {
	ts := newTestServer(t, nil)

	resp, err := ts.client().get(ctx, "/demo/comparisons")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err = decodeJSON(resp, nil)

	var apiErr *apiError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *apiError, got %T", err)
	}
	if apiErr.Status != 404 || apiErr.Type != "not_found_error" {
		t.Errorf("unexpected api error: %+v", apiErr)
	}
	if ts.requests[0].Auth != "Bearer test-token" {
		t.Errorf("auth = %q", ts.requests[0].Auth)
	}
}

func TestDemoHint(t *testing.T) {
	err := demoHint(&apiError{Status: 409, Type: "setup_incomplete", Message: "x", NextStep: "skills"})
	if err == nil || !strings.Contains(err.Error(), "humanmode setup skills") {
		t.Errorf("error = %v, want a setup hint", err)
	}

	other := errors.New("boom")
	if demoHint(other) != other {
		t.Error("unrelated errors must pass through")
	}
}

func TestSkillFlagName(t *testing.T) {
	tests := map[string]string{
		"react":           "react",
		"machineLearning": "machine-learning",
		"systemDesign":    "system-design",
	}
	for in, want := range tests {
		if got := skillFlagName(in); got != want {
			t.Errorf("skillFlagName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRecordUntil(t *testing.T) {
	enter := make(chan struct{})
	close(enter)

	var ticks []int
	err := recordUntil(ctx, time.Minute, enter, func(n int) { ticks = append(ticks, n) })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ticks) != 1 || ticks[0] != 0 {
		t.Errorf("ticks = %v, want [0]", ticks)
	}

	cctx, cancel := context.WithCancel(ctx)
	cancel()
	if err := recordUntil(cctx, time.Minute, nil, func(int) {}); !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestResetCommand_RequiresConfirm(t *testing.T) {
	ts := newTestServer(t, nil)
	useClient(t, ts.client())

	if _, err := runCmd(t, "reset"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ts.requests) != 0 {
		t.Errorf("expected no requests without --confirm, got %d", len(ts.requests))
	}
}

func TestResetCommand_Confirmed(t *testing.T) {
	ts := newTestServer(t, map[string]string{"DELETE /setup": ``})
	useClient(t, ts.client())

	if _, err := runCmd(t, "reset", "--confirm"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ts.requests) != 1 || ts.requests[0].Method != http.MethodDelete {
		t.Errorf("unexpected requests: %+v", ts.requests)
	}
}

func TestSetupSkills_RejectsUndefinedLevel(t *testing.T) {
	ts := newTestServer(t, nil)
	useClient(t, ts.client())

	_, err := runCmd(t, "setup", "skills", "--react", "guru")
	if err == nil {
		t.Fatal("expected error for undefined level")
	}
	if len(ts.requests) != 0 {
		t.Errorf("expected no requests, got %d", len(ts.requests))
	}
}

func TestSetupSkills_MergesWithSaved(t *testing.T) {
	ts := newTestServer(t, map[string]string{
		"GET /setup/skills": `{"skills":{"react":"intermediate","kubernetes":"beginner"}}`,
		"PUT /setup/skills": `{"skills":{"react":"expert","kubernetes":"beginner","golang":"expert"}}`,
	})
	useClient(t, ts.client())

	out, err := runCmd(t, "setup", "skills", "--react", "Expert", "--set", "golang=expert")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ts.requests) != 2 {
		t.Fatalf("expected 2 requests, got %d", len(ts.requests))
	}

	var sent struct {
		Skills map[string]string `json:"skills"`
	}
	if err := json.Unmarshal([]byte(ts.requests[1].Body), &sent); err != nil {
		t.Fatalf("body parse error: %v", err)
	}
	if sent.Skills["react"] != "expert" || sent.Skills["kubernetes"] != "beginner" || sent.Skills["golang"] != "expert" {
		t.Errorf("unexpected skills sent: %v", sent.Skills)
	}
	if !strings.Contains(out, "React / Frontend") {
		t.Errorf("output missing skill label:\n%s", out)
	}
}

func TestSetupContext_RejectsUndefinedVibe(t *testing.T) {
	ts := newTestServer(t, nil)
	useClient(t, ts.client())

	if _, err := runCmd(t, "setup", "context", "--vibe", "chaotic"); err == nil {
		t.Fatal("expected error for undefined vibe")
	}
	if len(ts.requests) != 0 {
		t.Errorf("expected no requests, got %d", len(ts.requests))
	}
}

func TestQuestionsCommand_Personalized(t *testing.T) {
	ts := newTestServer(t, map[string]string{
		"GET /responses/ml-basics": `{"response":"an answer"}`,
	})
	useClient(t, ts.client())

	out, err := runCmd(t, "questions", "ml-basics", "--skill", "expert", "--tone", "casual")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "an answer") {
		t.Errorf("output = %q", out)
	}
	if got := ts.requests[0].Path; got != "/responses/ml-basics?skill=expert&tone=casual" {
		t.Errorf("path = %q", got)
	}
}

func TestWizardAgainstServer(t *testing.T) {
	useClient(t, newAppServer(t))

	_, err := runCmd(t, "demo")
	if err == nil || !strings.Contains(err.Error(), "humanmode setup voice") {
		t.Fatalf("expected setup hint before setup, got %v", err)
	}

	out, err := runCmd(t, "setup", "voice", "--seconds", "1")
	if err != nil {
		t.Fatalf("setup voice: %v", err)
	}
	if !strings.Contains(out, "Filler words") {
		t.Errorf("voice output missing patterns:\n%s", out)
	}

	if _, err := runCmd(t, "setup", "skills", "--machine-learning", "expert"); err != nil {
		t.Fatalf("setup skills: %v", err)
	}
	if _, err := runCmd(t, "setup", "context", "--company", "enterprise", "--stage", "final-round", "--vibe", "formal"); err != nil {
		t.Fatalf("setup context: %v", err)
	}

	out, err = runCmd(t, "profile", "show")
	if err != nil {
		t.Fatalf("profile show: %v", err)
	}
	var p map[string]any
	if err := json.Unmarshal([]byte(out), &p); err != nil {
		t.Fatalf("profile show output is not JSON: %v\n%s", err, out)
	}
	if p["setup_complete"] != true {
		t.Errorf("expected setup_complete, got %v", p["setup_complete"])
	}

	out, err = runCmd(t, "demo")
	if err != nil {
		t.Fatalf("demo: %v", err)
	}
	if !strings.Contains(out, "Your answer") || !strings.Contains(out, "How we adapted it") {
		t.Errorf("demo output incomplete:\n%s", out)
	}

	exportPath := filepath.Join(t.TempDir(), "profile.json")
	if _, err := runCmd(t, "profile", "export", "--output", exportPath); err != nil {
		t.Fatalf("profile export: %v", err)
	}
	if _, err := runCmd(t, "reset", "--confirm"); err != nil {
		t.Fatalf("reset: %v", err)
	}
	out, err = runCmd(t, "setup")
	if err != nil {
		t.Fatalf("setup status: %v", err)
	}
	if !strings.Contains(out, "humanmode setup voice") {
		t.Errorf("expected setup to restart at voice after reset:\n%s", out)
	}

	out, err = runCmd(t, "profile", "import", exportPath)
	if err != nil {
		t.Fatalf("profile import: %v", err)
	}
	if strings.Contains(out, "not yet") || strings.Count(out, "saved") != 3 || !strings.Contains(out, "complete") {
		t.Errorf("import should report every step saved:\n%s", out)
	}
}
