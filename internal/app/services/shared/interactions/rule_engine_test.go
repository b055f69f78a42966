package interactions

import (
	"mdtcare-service/internal/app/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRuleEngine_CheckInteractions(t *testing.T) {
	engine := NewRuleEngine()

	t.Run("flags a known pair", func(t *testing.T) {
		interactions := engine.CheckInteractions("warfarin", []string{"aspirin"})
		require.Len(t, interactions, 1)
		assert.Equal(t, "aspirin", interactions[0].WithDrug)
		assert.Equal(t, models.SeverityMajor, interactions[0].Severity)
		assert.NotEmpty(t, interactions[0].Management)
	})

	t.Run("matches case-insensitively", func(t *testing.T) {
		interactions := engine.CheckInteractions("Warfarin", []string{"ASPIRIN"})
		require.Len(t, interactions, 1)
		assert.Equal(t, "ASPIRIN", interactions[0].WithDrug)
	})

	t.Run("matches the co-medication on substring", func(t *testing.T) {
		interactions := engine.CheckInteractions("warfarin", []string{"aspirin 75mg"})
		require.Len(t, interactions, 1)
		assert.Equal(t, "aspirin 75mg", interactions[0].WithDrug)
	})

	t.Run("fails open for an unmapped drug", func(t *testing.T) {
		interactions := engine.CheckInteractions("obscuramycin", []string{"warfarin", "aspirin"})
		assert.Empty(t, interactions)
	})

	t.Run("returns nothing when the co-medication is unknown", func(t *testing.T) {
		interactions := engine.CheckInteractions("warfarin", []string{"paracetamol"})
		assert.Empty(t, interactions)
	})

	t.Run("reports one interaction per co-medication", func(t *testing.T) {
		interactions := engine.CheckInteractions("warfarin", []string{"aspirin", "ibuprofen", "metronidazole"})
		assert.Len(t, interactions, 3)
	})
}

func TestRuleEngine_HasRuleFor(t *testing.T) {
	engine := NewRuleEngine()

	assert.True(t, engine.HasRuleFor("warfarin"), "expected a rule set for warfarin")
	assert.True(t, engine.HasRuleFor("Aspirin"), "lookup should be case-insensitive")
	assert.False(t, engine.HasRuleFor("obscuramycin"), "unknown drugs have no rule set")
}
