package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var clearData bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with a demo company, users and approval rules for development.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlxDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		db, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: sqlxDB.DB}), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to init gorm: %v", err)
		}

		if clearData {
			for _, table := range []string{"expenses", "approval_rules", "users", "companies"} {
				if err := db.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		password := "password"
		hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

		companyName := "Acme Corp"
		var companyID int64
		row := db.Raw("SELECT id FROM companies WHERE name = ?", companyName).Row()
		if err := row.Scan(&companyID); err != nil {
			// USD 1000.00 threshold
			if err := db.Exec("INSERT INTO companies (name, currency, approval_threshold_cents, created_at, updated_at) VALUES (?, 'USD', 100000, now(), now())", companyName).Error; err != nil {
				log.Fatalf("failed to insert company: %v", err)
			}
			if err := db.Raw("SELECT id FROM companies WHERE name = ?", companyName).Row().Scan(&companyID); err != nil {
				log.Fatalf("failed to lookup company id: %v", err)
			}
			fmt.Println("Seeded company:", companyName)
		}

		users := []struct {
			Email string
			Name  string
			Role  string
		}{
			{"admin@acme.test", "Ada Admin", "admin"},
			{"manager@acme.test", "Mila Manager", "manager"},
			{"employee@acme.test", "Evan Employee", "employee"},
		}

		var managerID int64
		for _, u := range users {
			var exists int
			row := db.Raw("SELECT 1 FROM users WHERE email = ?", u.Email).Row()
			if err := row.Scan(&exists); err == nil {
				fmt.Println("user already exists:", u.Email)
				continue
			}

			var managerRef interface{}
			if u.Role == "employee" && managerID != 0 {
				managerRef = managerID
			}
			if err := db.Exec("INSERT INTO users (email, name, password_hash, role, company_id, manager_id, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, now(), now())",
				u.Email, u.Name, string(hash), u.Role, companyID, managerRef).Error; err != nil {
				log.Fatalf("failed to insert user %s: %v", u.Email, err)
			}
			if u.Role == "manager" {
				if err := db.Raw("SELECT id FROM users WHERE email = ?", u.Email).Row().Scan(&managerID); err != nil {
					log.Fatalf("failed to lookup manager id: %v", err)
				}
			}
			fmt.Println("Seeded user:", u.Email)
		}

		rules := []struct {
			Name         string
			Condition    string
			AmountCents  int64
			Category     string
			ApproverRole string
		}{
			{"Large amounts need a manager", "amount", 50000, "", "manager"},
			{"Travel needs an admin", "category", 0, "travel", "admin"},
		}

		for _, r := range rules {
			var exists int
			row := db.Raw("SELECT 1 FROM approval_rules WHERE company_id = ? AND name = ?", companyID, r.Name).Row()
			if err := row.Scan(&exists); err == nil {
				continue
			}
			if err := db.Exec("INSERT INTO approval_rules (company_id, name, condition, amount_cents, category, approver_role, enabled, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, true, now(), now())",
				companyID, r.Name, r.Condition, r.AmountCents, r.Category, r.ApproverRole).Error; err != nil {
				log.Fatalf("failed to insert rule %s: %v", r.Name, err)
			}
			fmt.Println("Seeded rule:", r.Name)
		}

		fmt.Println("Seeding complete. All users share the password:", password)
	},
}

func init() {
	seedCmd.Flags().BoolVar(&clearData, "clear", false, "Clear existing data before seeding")
}
