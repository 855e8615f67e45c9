package ensemble

import (
	"testing"

	"github.com/alejandrodnm/nomnom/internal/domain"
	"github.com/stretchr/testify/assert"
)

func sub(t domain.SignalType, score float64, evidence ...string) domain.SubScore {
	return domain.SubScore{Type: t, Score: score, Evidence: evidence}
}

func TestWeights_SumToOne(t *testing.T) {
	assert.InDelta(t, 1.0, TotalWeight(), 1e-12)
	assert.Len(t, Weights, 5)
}

func TestCombine_AllZero(t *testing.T) {
	res := Combine([]domain.SubScore{
		sub(domain.SignalVolumeSpike, 0),
		sub(domain.SignalOrderImbalance, 0),
		sub(domain.SignalCongressCorrelation, 0),
		sub(domain.SignalPriceMomentum, 0),
		sub(domain.SignalTimingPattern, 0),
	})
	assert.Equal(t, 0.0, res.Confidence)
	assert.False(t, Reportable(res.Confidence))
	assert.Empty(t, res.Evidence)
}

func TestCombine_AllOne(t *testing.T) {
	scores := make([]domain.SubScore, 0, len(Weights))
	for _, w := range Weights {
		scores = append(scores, sub(w.Type, 1))
	}
	res := Combine(scores)
	assert.InDelta(t, 1.0, res.Confidence, 1e-9)
	assert.LessOrEqual(t, res.Confidence, 1.0)
}

func TestCombine_WeightedSum(t *testing.T) {
	res := Combine([]domain.SubScore{
		sub(domain.SignalVolumeSpike, 0.3, "vol"),
		sub(domain.SignalOrderImbalance, 1.0, "imb"),
		sub(domain.SignalTimingPattern, 0.7, "time"),
	})
	// 0.3×0.20 + 1.0×0.30 + 0.7×0.10 = 0.06 + 0.30 + 0.07
	assert.InDelta(t, 0.43, res.Confidence, 1e-9)
	assert.Equal(t, domain.SignalOrderImbalance, res.Dominant)
	assert.Equal(t, []string{"vol", "imb", "time"}, res.Evidence)
}

func TestCombine_OutOfRangeScoresClamped(t *testing.T) {
	res := Combine([]domain.SubScore{
		sub(domain.SignalVolumeSpike, 7),
		sub(domain.SignalPriceMomentum, -3),
	})
	assert.InDelta(t, 0.20, res.Confidence, 1e-9)
	assert.GreaterOrEqual(t, res.Confidence, 0.0)
}

func TestCombine_DominantTieBreakByDeclarationOrder(t *testing.T) {
	// volume_spike y timing_pattern empatan: gana el declarado antes en Weights.
	res := Combine([]domain.SubScore{
		sub(domain.SignalTimingPattern, 0.4),
		sub(domain.SignalVolumeSpike, 0.4),
	})
	assert.Equal(t, domain.SignalVolumeSpike, res.Dominant)

	// congress_correlation vs price_momentum
	res = Combine([]domain.SubScore{
		sub(domain.SignalPriceMomentum, 0.6),
		sub(domain.SignalCongressCorrelation, 0.6),
	})
	assert.Equal(t, domain.SignalCongressCorrelation, res.Dominant)
}

func TestCombine_DominantHighestRawScore(t *testing.T) {
	res := Combine([]domain.SubScore{
		sub(domain.SignalOrderImbalance, 0.2),
		sub(domain.SignalTimingPattern, 0.7),
	})
	// raw score, no score ponderado
	assert.Equal(t, domain.SignalTimingPattern, res.Dominant)
}

func TestReportable_Floor(t *testing.T) {
	assert.True(t, Reportable(0.2))
	assert.False(t, Reportable(0.1999))
}

func TestResolveDirection(t *testing.T) {
	tests := []struct {
		name      string
		direction float64
		position  domain.Position
		edge      float64
	}{
		{"buy pressure", 0.5, domain.PositionYes, 0.05},
		{"sell pressure", -0.4, domain.PositionNo, 0.04},
		{"edge capped", 1.0, domain.PositionYes, 0.1},
		{"neutral", 0, domain.PositionAbstain, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos, edge := ResolveDirection(tt.direction)
			assert.Equal(t, tt.position, pos)
			assert.InDelta(t, tt.edge, edge, 1e-9)
			assert.LessOrEqual(t, edge, maxEdge)
		})
	}
}

func TestResolveDirection_CapAtFifteenPercent(t *testing.T) {
	// |direction| no supera 1 en un book real, pero el cap es independiente
	_, edge := ResolveDirection(-2.5)
	assert.Equal(t, 0.15, edge)
}
