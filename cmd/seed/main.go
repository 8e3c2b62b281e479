package main

import (
	"fmt"
	"log"

	"mulnori/internal/boards"
	"mulnori/internal/shared/config"
	"mulnori/internal/shared/database"
	"mulnori/internal/sites"
	"mulnori/internal/tags"
)

type Seeder struct {
	db *database.DB
}

func main() {
	fmt.Println("🌱 Starting Mulnori Database Seeder...")

	cfg := config.Load()

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db}

	fmt.Println("\n🧹 Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("✅ Database cleaned successfully")

	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("✅ Database seeded successfully")

	fmt.Println("\n🎉 Seeding completed! Database is ready for testing.")
}

// CleanDatabase truncates all tables in reverse dependency order.
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"boards",
		"board_categories",
		"tag_deletion_requests",
		"tag_addition_requests",
		"sites",
	}

	pg := s.db.GetPostgreSQL()
	for _, table := range tables {
		if err := pg.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
			return fmt.Errorf("failed to truncate %s: %w", table, err)
		}
	}
	return nil
}

func (s *Seeder) SeedAll() error {
	if err := s.seedSites(); err != nil {
		return err
	}
	if err := s.seedCategories(); err != nil {
		return err
	}
	return nil
}

func (s *Seeder) seedSites() error {
	pg := s.db.GetPostgreSQL()

	seedSites := []sites.Site{
		{Name: "노들섬", Lat: 37.518893, Lon: 126.954888, Tags: "샤워장,주차장", Status: sites.StatusApproved},
		{Name: "반포한강공원", Lat: 37.510104, Lon: 126.995698, Tags: "화장실,매점", Status: sites.StatusApproved},
		{Name: "뚝섬유원지", Lat: 37.529521, Lon: 127.069895, Tags: "샤워장", Status: sites.StatusApproved},
		{Name: "경포해변", Lat: 37.805839, Lon: 128.908633, Tags: "바다,샤워장,주차장", Status: sites.StatusApproved},
		{Name: "협재해수욕장", Lat: 33.394215, Lon: 126.239742, Tags: "바다,화장실", Status: sites.StatusPending},
	}

	for i := range seedSites {
		if err := pg.Create(&seedSites[i]).Error; err != nil {
			return fmt.Errorf("failed to seed site %q: %w", seedSites[i].Name, err)
		}
	}

	// A couple of in-flight governance requests so the admin screens have
	// something to show.
	requests := []tags.TagAdditionRequest{
		{SiteID: seedSites[0].ID, TagName: "탈의실", Status: tags.ApprovalPending},
		{SiteID: seedSites[3].ID, TagName: "캠핑장", Status: tags.ApprovalPending},
	}
	for i := range requests {
		if err := pg.Create(&requests[i]).Error; err != nil {
			return fmt.Errorf("failed to seed tag request: %w", err)
		}
	}

	fmt.Printf("   seeded %d sites, %d tag addition requests\n", len(seedSites), len(requests))
	return nil
}

func (s *Seeder) seedCategories() error {
	pg := s.db.GetPostgreSQL()

	categories := []boards.Category{
		{Name: "자유게시판"},
		{Name: "버디구함"},
		{Name: "장비거래"},
		{Name: "다이빙후기"},
	}
	for i := range categories {
		if err := pg.Create(&categories[i]).Error; err != nil {
			return fmt.Errorf("failed to seed category %q: %w", categories[i].Name, err)
		}
	}

	fmt.Printf("   seeded %d board categories\n", len(categories))
	return nil
}
