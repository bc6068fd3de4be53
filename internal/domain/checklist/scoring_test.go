package checklist

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestOverallScore_Scenarios(t *testing.T) {
	tenantID := uuid.New()
	catalog := Catalog{
		buildCategory("foundation", CategoryTypeFoundational, 5, 2),
		buildCategory("ongoing", CategoryTypeOngoing, 0, 0),
	}

	t.Run("three of five foundational including both critical", func(t *testing.T) {
		statuses := completeItems(tenantID, "foundation-0", "foundation-1", "foundation-2")

		foundational := TypeProgress(CategoryTypeFoundational, catalog, statuses)
		ongoing := TypeProgress(CategoryTypeOngoing, catalog, statuses)
		b := Score(foundational, ongoing)

		assert.InDelta(t, 60.0, b.FoundationalBase, 1e-9)
		assert.InDelta(t, 100.0, b.CriticalScore, 1e-9)
		assert.InDelta(t, 64.0, b.FoundationalScore, 1e-9)
		assert.InDelta(t, 0.0, b.OngoingScore, 1e-9)
		assert.InDelta(t, 44.8, b.Total, 1e-9)
		assert.Equal(t, 45, b.OverallScore)
		assert.Equal(t, 45, OverallScore(foundational, ongoing))
	})

	t.Run("all foundational complete with empty ongoing caps at seventy", func(t *testing.T) {
		statuses := completeItems(tenantID, "foundation-0", "foundation-1", "foundation-2", "foundation-3", "foundation-4")

		foundational := TypeProgress(CategoryTypeFoundational, catalog, statuses)
		ongoing := TypeProgress(CategoryTypeOngoing, catalog, statuses)

		assert.Equal(t, 0, ongoing.CompletionPercentage)
		assert.Equal(t, 70, OverallScore(foundational, ongoing))
	})
}

func TestOverallScore_EverythingComplete(t *testing.T) {
	tenantID := uuid.New()
	catalog := Catalog{
		buildCategory("a", CategoryTypeFoundational, 7, 3),
		buildCategory("b", CategoryTypeOngoing, 3, 1),
	}
	var ids []string
	for _, item := range catalog.Items() {
		ids = append(ids, item.ID)
	}
	statuses := completeItems(tenantID, ids...)

	score := OverallScore(
		TypeProgress(CategoryTypeFoundational, catalog, statuses),
		TypeProgress(CategoryTypeOngoing, catalog, statuses),
	)
	assert.Equal(t, 100, score)
}

func TestOverallScore_AlwaysInRange(t *testing.T) {
	for total := 0; total <= 6; total++ {
		for completed := 0; completed <= total; completed++ {
			for critical := 0; critical <= total; critical++ {
				for completedCritical := 0; completedCritical <= critical && completedCritical <= completed; completedCritical++ {
					for ongoingTotal := 0; ongoingTotal <= 3; ongoingTotal++ {
						for ongoingDone := 0; ongoingDone <= ongoingTotal; ongoingDone++ {
							f := TypeProgressResult{
								TotalItems:             total,
								CompletedItems:         completed,
								CriticalItems:          critical,
								CompletedCriticalItems: completedCritical,
							}
							o := TypeProgressResult{TotalItems: ongoingTotal, CompletedItems: ongoingDone}
							score := OverallScore(f, o)
							assert.GreaterOrEqual(t, score, 0)
							assert.LessOrEqual(t, score, 100)
						}
					}
				}
			}
		}
	}
}

func TestOverallScore_ZeroInputs(t *testing.T) {
	assert.Equal(t, 0, OverallScore(TypeProgressResult{}, TypeProgressResult{}))
}

func TestOverallScore_ClampsInconsistentInput(t *testing.T) {
	f := TypeProgressResult{TotalItems: 1, CompletedItems: 5, CriticalItems: 1, CompletedCriticalItems: 5}
	o := TypeProgressResult{TotalItems: 1, CompletedItems: 5}
	assert.Equal(t, 100, OverallScore(f, o))
}

func TestOverallScore_NoCriticalItemsContributesNothing(t *testing.T) {
	f := TypeProgressResult{TotalItems: 4, CompletedItems: 4}
	o := TypeProgressResult{TotalItems: 2, CompletedItems: 2}

	b := Score(f, o)
	assert.InDelta(t, 0.0, b.CriticalScore, 1e-9)
	assert.InDelta(t, 90.0, b.FoundationalScore, 1e-9)
	// 90*0.7 + 100*0.3 = 93
	assert.Equal(t, 93, b.OverallScore)
}
