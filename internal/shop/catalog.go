package shop

// Reference data
var countries = []string{
	"USA", "UK", "Canada", "Australia", "Germany",
	"France", "India", "Japan", "Brazil", "Mexico",
}

var productCategories = []string{
	"Electronics", "Clothing", "Books", "Home & Garden", "Sports & Outdoors",
	"Beauty & Personal Care", "Toys & Games", "Food & Beverages", "Automotive", "Health & Wellness",
}

// productNames holds the base names available to each category.
var productNames = map[string][]string{
	"Electronics":            {"Smartphone", "Laptop", "Headphones", "Smart Watch", "Tablet", "Camera", "Speaker"},
	"Clothing":               {"T-Shirt", "Jeans", "Dress", "Jacket", "Sneakers", "Hat", "Scarf"},
	"Books":                  {"Novel", "Biography", "Cookbook", "Mystery", "Science Fiction", "History Book"},
	"Home & Garden":          {"Lamp", "Cushion", "Plant Pot", "Mirror", "Vase", "Curtains"},
	"Sports & Outdoors":      {"Yoga Mat", "Dumbbells", "Running Shoes", "Bicycle", "Tent"},
	"Beauty & Personal Care": {"Shampoo", "Moisturizer", "Lipstick", "Perfume", "Sunscreen"},
	"Toys & Games":           {"Board Game", "Action Figure", "Puzzle", "Building Blocks", "Doll"},
	"Food & Beverages":       {"Coffee", "Tea", "Chocolate", "Snacks", "Wine", "Honey"},
	"Automotive":             {"Car Mat", "Phone Mount", "Air Freshener", "Car Cover", "Tire Gauge"},
	"Health & Wellness":      {"Vitamins", "Protein Powder", "First Aid Kit", "Thermometer", "Blood Pressure Monitor"},
}

var paymentMethods = []string{
	"Credit Card", "Debit Card", "PayPal", "Apple Pay", "Google Pay", "Bank Transfer",
}

// Payment statuses and their relative weights (percent).
var (
	paymentStatuses = []string{"Completed", "Pending", "Failed", "Refunded"}
	paymentWeights  = []int{85, 10, 4, 1}
)

// Review text pools by sentiment.
var (
	positiveReviews = []string{
		"Great product! Highly recommended.",
		"Excellent quality and fast shipping.",
		"Love it! Exactly as described.",
		"Perfect for my needs. Very satisfied.",
		"Amazing product, will buy again!",
		"Outstanding quality and value.",
		"Better than expected. Great purchase!",
	}
	negativeReviews = []string{
		"Not what I expected. Disappointed.",
		"Quality could be better for the price.",
		"Had some issues with this product.",
		"Could use some improvements.",
		"Average product, nothing special.",
	}
	neutralReviews = []string{
		"It's okay, does the job.",
		"Decent product for the price.",
		"As expected, nothing more.",
		"Average quality, works fine.",
	}
)

// Sentiment classifies a rating into the review text pool it draws from.
type Sentiment string

// Review sentiments.
const (
	Positive Sentiment = "positive"
	Neutral  Sentiment = "neutral"
	Negative Sentiment = "negative"
)

// SentimentFor returns the sentiment pool for a rating: 4 and above is
// positive, 2 and below negative, anything else neutral.
func SentimentFor(rating int) Sentiment {
	switch {
	case rating >= 4:
		return Positive
	case rating <= 2:
		return Negative
	default:
		return Neutral
	}
}

// ReviewPool returns the texts a review with the given sentiment may use.
func ReviewPool(s Sentiment) []string {
	switch s {
	case Positive:
		return positiveReviews
	case Negative:
		return negativeReviews
	default:
		return neutralReviews
	}
}

// Countries returns the fixed set of customer countries.
func Countries() []string {
	return append([]string(nil), countries...)
}

// Categories returns the fixed set of product categories.
func Categories() []string {
	return append([]string(nil), productCategories...)
}

// PaymentMethods returns the fixed set of payment methods.
func PaymentMethods() []string {
	return append([]string(nil), paymentMethods...)
}

// PaymentStatuses returns the fixed set of payment statuses.
func PaymentStatuses() []string {
	return append([]string(nil), paymentStatuses...)
}
