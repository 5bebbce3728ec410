package database

import (
	"fmt"
	"log"
	"restaurant_manager/constants"
	"restaurant_manager/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func SeedData(db *gorm.DB) {
	bytes, err := bcrypt.GenerateFromPassword([]byte("admin123"), 10)
	hashPassword := string(bytes)
	if err != nil {
		log.Println("failed to hash seed password:", err)
		return
	}

	users := []model.User{
		{Username: "admin", Email: "admin@restaurant.local", Password: hashPassword, Role: constants.ROLE_ADMIN, FirstName: "System", LastName: "Admin"},
		{Username: "manager", Email: "manager@restaurant.local", Password: hashPassword, Role: constants.ROLE_MANAGER, FirstName: "Maria", LastName: "Quinn"},
		{Username: "cashier1", Email: "cashier@restaurant.local", Password: hashPassword, Role: constants.ROLE_CASHIER, FirstName: "Carl", LastName: "Ng"},
		{Username: "waiter1", Email: "waiter@restaurant.local", Password: hashPassword, Role: constants.ROLE_WAITER, FirstName: "Wanda", LastName: "Lee"},
		{Username: "chef1", Email: "chef@restaurant.local", Password: hashPassword, Role: constants.ROLE_CHEF, FirstName: "Chen", LastName: "Park"},
	}
	for _, user := range users {
		if err := db.Where(model.User{Username: user.Username}).FirstOrCreate(&user).Error; err != nil {
			log.Println("failed to seed user:", user.Username, "error:", err)
		}
	}

	sections := map[string]int{"Main Hall": 8, "Terrace": 4, "Private": 2}
	num := 1
	for section, count := range sections {
		for i := 0; i < count; i++ {
			capacity := 2 + (i%3)*2 // 2, 4, 6
			table := model.Table{TableNumber: fmt.Sprintf("T%d", num), Capacity: capacity, Section: section}
			if err := db.Where(model.Table{TableNumber: table.TableNumber}).FirstOrCreate(&table).Error; err != nil {
				log.Println("failed to seed table:", table.TableNumber, "error:", err)
			}
			num++
		}
	}

	for i := 1; i <= 10; i++ {
		pager := model.Pager{PagerNumber: i}
		if err := db.Where(model.Pager{PagerNumber: i}).FirstOrCreate(&pager).Error; err != nil {
			log.Println("failed to seed pager:", i, "error:", err)
		}
	}

	stations := []model.Station{
		{Name: "Grill", Description: "Grilled mains"},
		{Name: "Fryer", Description: "Fried sides and starters"},
		{Name: "Cold", Description: "Salads and desserts"},
		{Name: "Bar", Description: "Drinks"},
	}
	for _, station := range stations {
		if err := db.Where(model.Station{Name: station.Name}).FirstOrCreate(&station).Error; err != nil {
			log.Println("failed to seed station:", station.Name, "error:", err)
		}
	}

	categories := []model.Category{
		{Name: "Starters", DisplayOrder: 1},
		{Name: "Mains", DisplayOrder: 2},
		{Name: "Desserts", DisplayOrder: 3},
		{Name: "Drinks", DisplayOrder: 4},
	}
	for _, category := range categories {
		if err := db.Where(model.Category{Name: category.Name}).FirstOrCreate(&category).Error; err != nil {
			log.Println("failed to seed category:", category.Name, "error:", err)
		}
	}

	suppliers := []model.Supplier{
		{Name: "FreshFarm Produce", ContactPerson: "Ana Duarte", Phone: "555-0101", Email: "orders@freshfarm.example"},
		{Name: "Metro Meats", ContactPerson: "Bo Svensson", Phone: "555-0102", Email: "sales@metromeats.example"},
	}
	for _, supplier := range suppliers {
		if err := db.Where(model.Supplier{Name: supplier.Name}).FirstOrCreate(&supplier).Error; err != nil {
			log.Println("failed to seed supplier:", supplier.Name, "error:", err)
		}
	}

	ingredients := []model.Ingredient{
		{Name: "Tomato", Unit: "kg", CurrentStock: 25, MinimumStock: 5, CostPerUnit: 2.5, Category: "Vegetables"},
		{Name: "Beef Patty", Unit: "pcs", CurrentStock: 80, MinimumStock: 20, CostPerUnit: 1.8, Category: "Meat"},
		{Name: "Burger Bun", Unit: "pcs", CurrentStock: 100, MinimumStock: 30, CostPerUnit: 0.4, Category: "Bakery"},
		{Name: "Cooking Oil", Unit: "l", CurrentStock: 40, MinimumStock: 10, CostPerUnit: 3.2, Category: "Pantry"},
	}
	for _, ingredient := range ingredients {
		if err := db.Where(model.Ingredient{Name: ingredient.Name}).FirstOrCreate(&ingredient).Error; err != nil {
			log.Println("failed to seed ingredient:", ingredient.Name, "error:", err)
		}
	}
}
