package checklist

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifier_Classify(t *testing.T) {
	c := DefaultClassifier()

	tests := []struct {
		name string
		item Item
		want RevenueBucket
	}{
		{"online ordering", Item{Title: "Set up Online Ordering", Description: "Take pickup orders from your site"}, BucketOnlineOrdering},
		{"delivery apps", Item{Title: "Join DoorDash"}, BucketDeliveryMarketplaces},
		{"google business profile", Item{Title: "Claim your Google Business Profile"}, BucketLocalSearch},
		{"reviews", Item{Title: "Respond to customer reviews"}, BucketReviewsReputation},
		{"loyalty", Item{Title: "Launch a loyalty program"}, BucketLoyaltyProgram},
		{"sms", Item{Title: "Send a monthly SMS blast"}, BucketEmailSMS},
		{"social", Item{Title: "Post on Instagram weekly"}, BucketSocialMedia},
		{"website", Item{Title: "Build a website"}, BucketWebsite},
		{"photos", Item{Title: "Professional food photos"}, BucketMenuPhotography},
		{"unmatched falls to default", Item{Title: "Train staff on upselling"}, BucketDefault},
		{"matching is case insensitive", Item{Title: "INSTAGRAM GIVEAWAY"}, BucketSocialMedia},
		{"description participates", Item{Title: "Grow repeat visits", Description: "Use a punch card"}, BucketLoyaltyProgram},
		{"whole words only", Item{Title: "Post on Instagram celebrating your staff"}, BucketSocialMedia},
		{"operating is not rating", Item{Title: "Publish your operating hours"}, BucketDefault},
		{"plural keyword", Item{Title: "Collect guest testimonials"}, BucketReviewsReputation},
		{"photography beats listing", Item{Title: "Shoot menu photos", Description: "Use them on every listing"}, BucketMenuPhotography},
		{"listing photos stay local search", Item{Title: "Refresh listing photos"}, BucketLocalSearch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.item))
		})
	}
}

func TestClassifier_FirstMatchWins(t *testing.T) {
	c := DefaultClassifier()
	// matches both online-ordering and website rules; online ordering is earlier
	item := Item{Title: "Add online ordering to your website"}
	assert.Equal(t, BucketOnlineOrdering, c.Classify(item))

	custom := NewClassifier([]ClassificationRule{
		{Name: "website-first", Match: matchWords("website"), Bucket: BucketWebsite},
		{Name: "ordering", Match: matchWords("ordering"), Bucket: BucketOnlineOrdering},
	}, "")
	assert.Equal(t, BucketWebsite, custom.Classify(item))
	assert.Equal(t, BucketDefault, custom.Classify(Item{Title: "nothing here"}))
}

func TestRevenueBucket_WeeklyValue(t *testing.T) {
	assert.True(t, decimal.NewFromInt(890).Equal(BucketOnlineOrdering.WeeklyValue()))
	assert.True(t, decimal.NewFromInt(450).Equal(BucketLocalSearch.WeeklyValue()))
	assert.True(t, BucketDefault.WeeklyValue().Equal(RevenueBucket("unknown").WeeklyValue()))
}

func TestRevenueImpact(t *testing.T) {
	tenantID := uuid.New()
	catalog := Catalog{
		{
			Category: Category{ID: "digital", Name: "Digital", Type: CategoryTypeFoundational},
			Items: []Item{
				{ID: "order", CategoryID: "digital", Title: "Online ordering"},
				{ID: "gbp", CategoryID: "digital", Title: "Google Business Profile"},
			},
		},
		{
			Category: Category{ID: "ops", Name: "Ops", Type: CategoryTypeOngoing},
			Items: []Item{
				{ID: "staff", CategoryID: "ops", Title: "Staff training"},
			},
		},
	}

	t.Run("nothing completed", func(t *testing.T) {
		r := RevenueImpact(catalog, nil)
		assert.True(t, decimal.NewFromInt(1490).Equal(r.TotalPotential))
		assert.True(t, r.CompletedValue.IsZero())
		assert.True(t, r.WeeklyPotential.Equal(r.TotalPotential))
		assert.Equal(t, 0, r.CompletionPercentage)
		require.Len(t, r.Buckets, 3)
		assert.Equal(t, BucketOnlineOrdering, r.Buckets[0].Bucket)
	})

	t.Run("completed items move value to realized", func(t *testing.T) {
		r := RevenueImpact(catalog, completeItems(tenantID, "order"))
		assert.True(t, decimal.NewFromInt(890).Equal(r.CompletedValue))
		assert.True(t, decimal.NewFromInt(600).Equal(r.WeeklyPotential))
		assert.True(t, r.WeeklyPotential.Equal(r.TotalPotential.Sub(r.CompletedValue)))
		assert.True(t, r.CompletedValue.LessThanOrEqual(r.TotalPotential))
		// 890/1490 = 59.73%
		assert.Equal(t, 60, r.CompletionPercentage)
	})

	t.Run("non completed statuses do not count", func(t *testing.T) {
		statuses := StatusSet{
			"order": {TenantID: tenantID, ItemID: "order", Status: StatusInProgress},
			"gbp":   {TenantID: tenantID, ItemID: "gbp", Status: StatusNotApplicable},
		}
		r := RevenueImpact(catalog, statuses)
		assert.True(t, r.CompletedValue.IsZero())
	})

	t.Run("all completed", func(t *testing.T) {
		r := RevenueImpact(catalog, completeItems(tenantID, "order", "gbp", "staff"))
		assert.True(t, r.WeeklyPotential.IsZero())
		assert.Equal(t, 100, r.CompletionPercentage)
	})

	t.Run("empty catalog", func(t *testing.T) {
		r := RevenueImpact(nil, nil)
		assert.True(t, r.TotalPotential.IsZero())
		assert.Equal(t, 0, r.CompletionPercentage)
		assert.Empty(t, r.Buckets)
	})
}
