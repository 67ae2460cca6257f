package product

import (
	"time"

	"github.com/shopspring/decimal"
)

var (
	seedCreated = time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	seedUpdated = time.Date(2024, 1, 20, 15, 30, 0, 0, time.UTC)
)

func seedProduct(id, name, desc string, price int64, unit string, perUnit int64, category string, stock int, tags, boughtWith []string, rating float64, reviews int, images ...string) Product {
	return Product{
		ID:                   id,
		Name:                 name,
		Slug:                 id,
		Description:          desc,
		Price:                decimal.NewFromInt(price),
		Currency:             "KES",
		Unit:                 unit,
		PricePerUnit:         decimal.NewFromInt(perUnit),
		CategoryID:           category,
		Images:               images,
		Stock:                stock,
		Tags:                 tags,
		FrequentlyBoughtWith: boughtWith,
		Rating:               rating,
		ReviewCount:          reviews,
		CreatedAt:            seedCreated,
		UpdatedAt:            seedUpdated,
	}
}

// Seed is the static grocery catalog used when no database is configured and
// by the `seed` command.
func Seed() []Product {
	return []Product{
		seedProduct("fresh-mangoes", "Fresh Mangoes", "Sweet and ripe mangoes from local farms. Perfect for eating fresh or making juice.",
			200, "500g", 400, "fruits", 50, []string{"fruit", "seasonal", "vitamin-c"}, []string{"bananas", "oranges"}, 4.8, 24,
			"https://images.pexels.com/photos/2294471/pexels-photo-2294471.jpeg?auto=compress&cs=tinysrgb&w=600",
			"https://images.pexels.com/photos/918940/pexels-photo-918940.jpeg?auto=compress&cs=tinysrgb&w=600"),
		seedProduct("bananas", "Bananas", "Fresh bananas, perfect for breakfast or smoothies. Rich in potassium and natural sugars.",
			120, "1kg", 120, "fruits", 30, []string{"fruit", "potassium", "energy"}, []string{"fresh-mangoes", "apples"}, 4.6, 18,
			"https://images.pexels.com/photos/2238309/pexels-photo-2238309.jpeg?auto=compress&cs=tinysrgb&w=600"),
		seedProduct("oranges", "Sweet Oranges", "Juicy sweet oranges packed with vitamin C. Great for fresh juice or eating.",
			180, "1kg", 180, "fruits", 40, []string{"fruit", "vitamin-c", "citrus"}, []string{"lemons", "fresh-mangoes"}, 4.7, 31,
			"https://images.pexels.com/photos/161559/background-bitter-breakfast-bright-161559.jpeg?auto=compress&cs=tinysrgb&w=600"),
		seedProduct("apples", "Red Apples", "Crisp and sweet red apples. Perfect for snacking or adding to salads.",
			250, "1kg", 250, "fruits", 25, []string{"fruit", "fiber", "antioxidants"}, []string{"bananas", "grapes"}, 4.5, 12,
			"https://images.pexels.com/photos/102104/pexels-photo-102104.jpeg?auto=compress&cs=tinysrgb&w=600"),
		seedProduct("tomatoes", "Fresh Tomatoes", "Ripe, juicy tomatoes perfect for cooking, salads, and sauces.",
			100, "1kg", 100, "vegetables", 60, []string{"vegetable", "vitamin-c", "lycopene"}, []string{"onions", "capsicum"}, 4.9, 45,
			"https://images.pexels.com/photos/533280/pexels-photo-533280.jpeg?auto=compress&cs=tinysrgb&w=600"),
		seedProduct("onions", "Red Onions", "Fresh red onions, essential for cooking. Strong flavor and aroma.",
			80, "1kg", 80, "vegetables", 45, []string{"vegetable", "cooking-essential"}, []string{"tomatoes", "garlic"}, 4.4, 29,
			"https://images.pexels.com/photos/144248/potatoes-vegetables-erdfrucht-bio-144248.jpeg?auto=compress&cs=tinysrgb&w=600"),
		seedProduct("capsicum", "Bell Peppers", "Colorful bell peppers, great for stir-fries and salads. Sweet and crunchy.",
			200, "500g", 400, "vegetables", 35, []string{"vegetable", "vitamin-c", "colorful"}, []string{"tomatoes", "onions"}, 4.6, 16,
			"https://images.pexels.com/photos/1359326/pexels-photo-1359326.jpeg?auto=compress&cs=tinysrgb&w=600"),
		seedProduct("spinach", "Fresh Spinach", "Fresh green spinach leaves, packed with iron and vitamins. Great for salads and cooking.",
			60, "250g", 240, "vegetables", 20, []string{"vegetable", "iron", "leafy-green"}, []string{"carrots", "kale"}, 4.7, 22,
			"https://images.pexels.com/photos/2325843/pexels-photo-2325843.jpeg?auto=compress&cs=tinysrgb&w=600"),
		seedProduct("fresh-milk", "Fresh Milk", "Fresh whole milk from local farms. Rich in calcium and protein.",
			65, "500ml", 130, "dairy", 40, []string{"dairy", "calcium", "protein"}, []string{"bread", "eggs"}, 4.8, 38,
			"https://images.pexels.com/photos/248412/pexels-photo-248412.jpeg?auto=compress&cs=tinysrgb&w=600"),
		seedProduct("eggs", "Farm Eggs", "Fresh farm eggs from free-range chickens. Perfect for breakfast and baking.",
			300, "30 pieces", 10, "dairy", 50, []string{"protein", "farm-fresh", "free-range"}, []string{"fresh-milk", "bread"}, 4.9, 42,
			"https://images.pexels.com/photos/162712/egg-white-food-protein-162712.jpeg?auto=compress&cs=tinysrgb&w=600"),
		seedProduct("white-rice", "White Rice", "Premium quality white rice, perfect for daily meals. Well-cleaned and aromatic.",
			120, "1kg", 120, "staples", 100, []string{"staple", "carbohydrate", "grain"}, []string{"cooking-oil", "salt"}, 4.5, 67,
			"https://images.pexels.com/photos/723198/pexels-photo-723198.jpeg?auto=compress&cs=tinysrgb&w=600"),
		seedProduct("wheat-flour", "Wheat Flour", "Fine wheat flour for baking and cooking. Perfect for chapatis, cakes, and bread.",
			110, "1kg", 110, "staples", 80, []string{"flour", "baking", "staple"}, []string{"sugar", "cooking-oil"}, 4.6, 34,
			"https://images.pexels.com/photos/1414651/pexels-photo-1414651.jpeg?auto=compress&cs=tinysrgb&w=600"),
	}
}
