package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kalambet/humanmode/internal/profile"
)

func TestValidate(t *testing.T) {
	require.NoError(t, Validate())
}

func TestCatalogShape(t *testing.T) {
	assert.Equal(t, []string{
		"neural_networks", "scale_database", "tell_me_failure", "react_optimization", "api_design",
	}, IDs())

	categories := map[string]bool{}
	for _, q := range Questions() {
		categories[q.Category] = true
	}
	assert.Equal(t, map[string]bool{
		CategoryMachineLearning: true,
		CategorySystemDesign:    true,
		CategoryBehavioral:      true,
		CategoryFrontend:        true,
		CategoryBackend:         true,
	}, categories)
}

func TestGetResponse_AllCombinations(t *testing.T) {
	for _, id := range IDs() {
		seen := map[string]bool{}
		for _, level := range profile.AllSkillLevels() {
			for _, tone := range profile.AllTones() {
				got := GetResponse(id, level, tone)
				assert.NotEmpty(t, got, "%s/%s/%s", id, level, tone)
				assert.NotEqual(t, NotFoundResponse, got, "%s/%s/%s", id, level, tone)
				seen[got] = true
			}
		}
		assert.Len(t, seen, 9, "%s: every combination should have its own answer", id)
	}
}

func TestGetResponse_UnknownID(t *testing.T) {
	assert.Equal(t, "Response not found", GetResponse("does_not_exist", profile.Beginner, profile.Casual))
}

func TestGetResponse_UndefinedLevelPanics(t *testing.T) {
	assert.Panics(t, func() {
		GetResponse("neural_networks", profile.SkillLevel("guru"), profile.Casual)
	})
}

func TestGetGenericResponse_UnknownID(t *testing.T) {
	got := GetGenericResponse("does_not_exist")
	assert.Equal(t, FallbackGenericResponse, got)
	assert.NotEqual(t, NotFoundResponse, got)
	assert.Equal(t, "I would approach this systematically by analyzing the requirements, designing an appropriate solution, implementing best practices, and thoroughly testing the implementation.", got)
}

func TestNeuralNetworksExpertFormal(t *testing.T) {
	want := "I possess comprehensive expertise in neural network theory and implementation. These systems employ forward propagation through parameterized layers with non-linear activation functions, followed by gradient-based optimization via backpropagation utilizing the chain rule. My experience encompasses designing convolutional, recurrent, and attention-based architectures for enterprise-scale applications, with emphasis on performance optimization and generalization."
	assert.Equal(t, want, GetResponse("neural_networks", profile.Expert, profile.Formal))

	wantGeneric := "Neural networks are computational models inspired by biological neural networks. They consist of interconnected layers of artificial neurons that process information through weighted connections. The learning process involves forward propagation of inputs through the network, followed by backpropagation of errors to adjust weights using gradient descent optimization. This iterative process enables the network to learn complex patterns and relationships in data."
	assert.Equal(t, wantGeneric, GetGenericResponse("neural_networks"))
}

func TestMatrixOrientation(t *testing.T) {
	got := GetResponse("tell_me_failure", profile.Beginner, profile.Casual)
	assert.Contains(t, got, "in school")

	got = GetResponse("scale_database", profile.Intermediate, profile.Professional)
	assert.Equal(t, "I have experience scaling databases in production. My approach would start with comprehensive profiling to identify bottlenecks. I'd implement read replicas for query distribution, Redis caching for frequently accessed data, and optimize connection pooling. For write-heavy workloads, I'd evaluate sharding strategies while considering operational complexity.", got)
}

func TestLookup(t *testing.T) {
	e, ok := Lookup("api_design")
	require.True(t, ok)
	assert.Equal(t, "How would you design a RESTful API for a social media platform?", e.Question)
	assert.Equal(t, CategoryBackend, e.Category)

	_, ok = Lookup("nope")
	assert.False(t, ok)
}

func TestLookup_ReturnsCopy(t *testing.T) {
	e, _ := Lookup("neural_networks")
	e.Responses[0][0] = "mutated"
	assert.NotEqual(t, "mutated", GetResponse("neural_networks", profile.Beginner, profile.Casual))
}
