package catalog

import "bakery-storefront/internal/models"

var menuItems = []models.CatalogItem{
	{
		ID:          1,
		Name:        "Signature Choc Lava",
		Description: "Rich, decadent chocolate cake with a molten Belgian chocolate center.",
		Price:       "RM 15.00",
		Image:       "https://images.unsplash.com/photo-1624353365286-3f8d62daad51?q=80&w=800&auto=format&fit=crop",
		Category:    "Best Seller",
	},
	{
		ID:          2,
		Name:        "Classic Cheese Leleh",
		Description: "Fluffy vanilla sponge submerged in our secret overflowing cream cheese sauce.",
		Price:       "RM 25.00",
		Image:       "https://images.unsplash.com/photo-1550617931-e17a7b70dce2?q=80&w=800&auto=format&fit=crop",
		Category:    "Viral",
	},
	{
		ID:          3,
		Name:        "Hokkaido Cheese Tarts",
		Description: "Box of 6. Crunchy butter pastry filled with creamy, savory-sweet cheese mousse.",
		Price:       "RM 38.00",
		Image:       "https://images.unsplash.com/photo-1504113886838-5154797746d6?q=80&w=800&auto=format&fit=crop",
		Category:    "Box Set",
	},
	{
		ID:          4,
		Name:        "Premium Choc Moist",
		Description: "Ultra-moist chocolate sponge layered with smooth ganache.",
		Price:       "RM 18.00",
		Image:       "https://images.unsplash.com/photo-1606313564200-e75d5e30476c?q=80&w=800&auto=format&fit=crop",
		Category:    "Favorite",
	},
	{
		ID:          5,
		Name:        "Nutella Pods",
		Description: "Box of 16. Bite-sized crunchy pods filled with pure Nutella.",
		Price:       "RM 28.00",
		Image:       "https://images.unsplash.com/photo-1623594247528-94df5d992e59?q=80&w=800&auto=format&fit=crop",
		Category:    "Snack",
	},
	{
		ID:          6,
		Name:        "Pandan Gula Melaka",
		Description: "Fragrant pandan sponge with gula melaka buttercream.",
		Price:       "RM 22.00",
		Image:       "https://images.unsplash.com/photo-1628186252994-e3f9a73c0906?q=80&w=800&auto=format&fit=crop",
		Category:    "Local",
	},
	{
		ID:          7,
		Name:        "Red Velvet Luxury",
		Description: "Classic mild cocoa buttermilk sponge with tangy cream cheese frosting.",
		Price:       "RM 20.00",
		Image:       "https://images.unsplash.com/photo-1586788680434-30d324436962?q=80&w=800&auto=format&fit=crop",
		Category:    "Classic",
	},
	{
		ID:          8,
		Name:        "Salted Caramel Macarons",
		Description: "Box of 10. Delicate almond meringue shells with salted caramel.",
		Price:       "RM 45.00",
		Image:       "https://images.unsplash.com/photo-1569864358642-9d1684040f43?q=80&w=800&auto=format&fit=crop",
		Category:    "Gift",
	},
	{
		ID:          9,
		Name:        "Matcha Crepe Cake",
		Description: "Twenty paper-thin handmade crepes layered with light matcha cream.",
		Price:       "RM 24.00",
		Image:       "https://images.unsplash.com/photo-1595964205574-e3906eb46a6a?q=80&w=800&auto=format&fit=crop",
		Category:    "New",
	},
	{
		ID:          10,
		Name:        "Berry Pavlova",
		Description: "Crisp meringue shell with marshmallow center and fresh fruit.",
		Price:       "RM 18.00",
		Image:       "https://images.unsplash.com/photo-1629252327572-4d0413008064?q=80&w=800&auto=format&fit=crop",
		Category:    "Dessert",
	},
	{
		ID:          11,
		Name:        "Tiramisu Box",
		Description: "Italian classic. Coffee-soaked ladyfingers and mascarpone cream.",
		Price:       "RM 26.00",
		Image:       "https://images.unsplash.com/photo-1571877227200-a0d98ea607e9?q=80&w=800&auto=format&fit=crop",
		Category:    "Bestseller",
	},
	{
		ID:          12,
		Name:        "Fruit Tartlets",
		Description: "Box of 9. Sweet crust pastry filled with vanilla custard and fruits.",
		Price:       "RM 30.00",
		Image:       "https://images.unsplash.com/photo-1563729768640-481679f32387?q=80&w=800&auto=format&fit=crop",
		Category:    "Party",
	},
}
