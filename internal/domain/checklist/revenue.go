package checklist

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// RevenueBucket classifies an item by the kind of revenue it unlocks
type RevenueBucket string

const (
	BucketOnlineOrdering       RevenueBucket = "online_ordering"
	BucketDeliveryMarketplaces RevenueBucket = "delivery_marketplaces"
	BucketLocalSearch          RevenueBucket = "local_search"
	BucketReviewsReputation    RevenueBucket = "reviews_reputation"
	BucketLoyaltyProgram       RevenueBucket = "loyalty_program"
	BucketEmailSMS             RevenueBucket = "email_sms"
	BucketSocialMedia          RevenueBucket = "social_media"
	BucketWebsite              RevenueBucket = "website"
	BucketMenuPhotography      RevenueBucket = "menu_photography"
	BucketDefault              RevenueBucket = "general_marketing"
)

// bucketWeeklyValues holds the estimated weekly dollar value of each bucket
var bucketWeeklyValues = map[RevenueBucket]decimal.Decimal{
	BucketOnlineOrdering:       decimal.NewFromInt(890),
	BucketDeliveryMarketplaces: decimal.NewFromInt(620),
	BucketLocalSearch:          decimal.NewFromInt(450),
	BucketReviewsReputation:    decimal.NewFromInt(380),
	BucketLoyaltyProgram:       decimal.NewFromInt(360),
	BucketEmailSMS:             decimal.NewFromInt(340),
	BucketSocialMedia:          decimal.NewFromInt(290),
	BucketWebsite:              decimal.NewFromInt(260),
	BucketMenuPhotography:      decimal.NewFromInt(210),
	BucketDefault:              decimal.NewFromInt(150),
}

// WeeklyValue returns the bucket's weekly dollar value. Unknown buckets are
// valued as the default bucket.
func (b RevenueBucket) WeeklyValue() decimal.Decimal {
	if v, ok := bucketWeeklyValues[b]; ok {
		return v
	}
	return bucketWeeklyValues[BucketDefault]
}

// ClassificationRule maps a predicate over normalized item text to a bucket
type ClassificationRule struct {
	Name   string
	Match  func(text string) bool
	Bucket RevenueBucket
}

// matchWords builds a predicate matching any keyword as a whole word or
// phrase, optionally followed by a plural "s". "rating" does not match
// "celebrating".
func matchWords(keywords ...string) func(string) bool {
	quoted := make([]string, len(keywords))
	for i, kw := range keywords {
		quoted[i] = regexp.QuoteMeta(kw)
	}
	re := regexp.MustCompile(`\b(?:` + strings.Join(quoted, "|") + `)s?\b`)
	return re.MatchString
}

// DefaultClassificationRules is the ordered rule table. Earlier rules win:
// online ordering and delivery apps precede the broad rules, and menu
// photography precedes local search so photos meant for listings count as
// photography.
func DefaultClassificationRules() []ClassificationRule {
	return []ClassificationRule{
		{Name: "online-ordering", Match: matchWords("online ordering", "online order", "order online", "pickup", "takeout"), Bucket: BucketOnlineOrdering},
		{Name: "delivery-marketplaces", Match: matchWords("doordash", "uber eats", "ubereats", "grubhub", "delivery"), Bucket: BucketDeliveryMarketplaces},
		{Name: "menu-photography", Match: matchWords("menu photo", "food photo", "dish photo", "photography", "photo shoot", "photoshoot", "food video"), Bucket: BucketMenuPhotography},
		{Name: "local-search", Match: matchWords("google business", "google maps", "apple maps", "yelp", "local seo", "seo", "local search", "search", "listing"), Bucket: BucketLocalSearch},
		{Name: "reviews", Match: matchWords("review", "reputation", "rating", "testimonial"), Bucket: BucketReviewsReputation},
		{Name: "loyalty", Match: matchWords("loyalty", "reward", "punch card", "gift card", "referral"), Bucket: BucketLoyaltyProgram},
		{Name: "email-sms", Match: matchWords("email", "newsletter", "sms", "text message", "mailing list"), Bucket: BucketEmailSMS},
		{Name: "social-media", Match: matchWords("instagram", "facebook", "tiktok", "social", "influencer"), Bucket: BucketSocialMedia},
		{Name: "website", Match: matchWords("website", "domain", "landing page", "web site"), Bucket: BucketWebsite},
	}
}

// Classifier assigns items to revenue buckets using an ordered rule list
type Classifier struct {
	rules         []ClassificationRule
	defaultBucket RevenueBucket
}

// NewClassifier creates a classifier. The default bucket catches anything
// no rule matches and must not be empty.
func NewClassifier(rules []ClassificationRule, defaultBucket RevenueBucket) *Classifier {
	if defaultBucket == "" {
		defaultBucket = BucketDefault
	}
	return &Classifier{rules: rules, defaultBucket: defaultBucket}
}

// DefaultClassifier returns the classifier with the built-in rule table
func DefaultClassifier() *Classifier {
	return NewClassifier(DefaultClassificationRules(), BucketDefault)
}

// normalizeItemText lowercases title and description joined by a space
func normalizeItemText(item Item) string {
	return cases.Lower(language.Und).String(item.Title + " " + item.Description)
}

// Classify returns the bucket of the first matching rule, or the default bucket
func (c *Classifier) Classify(item Item) RevenueBucket {
	text := normalizeItemText(item)
	for _, rule := range c.rules {
		if rule.Match != nil && rule.Match(text) {
			return rule.Bucket
		}
	}
	return c.defaultBucket
}

// BucketImpact is the revenue contribution of one bucket
type BucketImpact struct {
	Bucket         RevenueBucket   `json:"bucket"`
	ItemCount      int             `json:"item_count"`
	CompletedCount int             `json:"completed_count"`
	TotalPotential decimal.Decimal `json:"total_potential"`
	CompletedValue decimal.Decimal `json:"completed_value"`
}

// RevenueImpactResult is the weekly revenue estimate for one tenant
type RevenueImpactResult struct {
	WeeklyPotential      decimal.Decimal `json:"weekly_potential"`
	CompletedValue       decimal.Decimal `json:"completed_value"`
	TotalPotential       decimal.Decimal `json:"total_potential"`
	CompletionPercentage int             `json:"completion_percentage"`
	Buckets              []BucketImpact  `json:"buckets"`
}

// RevenueImpact sums bucket values over every catalog item. Completed items
// contribute to CompletedValue; the rest is unrealized weekly potential.
func (c *Classifier) RevenueImpact(catalog Catalog, statuses StatusSet) RevenueImpactResult {
	total := decimal.Zero
	completed := decimal.Zero

	var order []RevenueBucket
	byBucket := make(map[RevenueBucket]*BucketImpact)

	for _, item := range catalog.Items() {
		bucket := c.Classify(item)
		value := bucket.WeeklyValue()

		impact, ok := byBucket[bucket]
		if !ok {
			impact = &BucketImpact{Bucket: bucket, TotalPotential: decimal.Zero, CompletedValue: decimal.Zero}
			byBucket[bucket] = impact
			order = append(order, bucket)
		}
		impact.ItemCount++
		impact.TotalPotential = impact.TotalPotential.Add(value)
		total = total.Add(value)

		if statuses.IsCompleted(item.ID) {
			impact.CompletedCount++
			impact.CompletedValue = impact.CompletedValue.Add(value)
			completed = completed.Add(value)
		}
	}

	buckets := make([]BucketImpact, 0, len(order))
	for _, b := range order {
		buckets = append(buckets, *byBucket[b])
	}

	pct := 0
	if total.IsPositive() {
		pct = int(completed.Div(total).Mul(decimal.NewFromInt(100)).Round(0).IntPart())
	}

	return RevenueImpactResult{
		WeeklyPotential:      total.Sub(completed),
		CompletedValue:       completed,
		TotalPotential:       total,
		CompletionPercentage: pct,
		Buckets:              buckets,
	}
}

// RevenueImpact estimates revenue with the default classifier
func RevenueImpact(catalog Catalog, statuses StatusSet) RevenueImpactResult {
	return DefaultClassifier().RevenueImpact(catalog, statuses)
}
