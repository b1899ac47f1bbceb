package main

import (
	"fmt"
	"log"

	"gorm.io/gorm/clause"

	"github.com/privylabs/privyrecord/internal/config"
	"github.com/privylabs/privyrecord/internal/database"
	"github.com/privylabs/privyrecord/internal/models"
	"github.com/privylabs/privyrecord/internal/utils"
)

// Demo wallet addresses (well-known Aleo test accounts)
const (
	aliceAddr = "aleo1wamjpw5pqwusrh7glnqqk5rltfq0axf8dvk5g2jtn2lxrpgkyqqs0z3e2x"
	bobAddr   = "aleo1yr9n35r0h6rpun3l5jnnervl64ck9lyj3zypcc2glf788r3rgy9s6l7fe7"
)

func main() {
	fmt.Println("🌱 privyrecord Demo Data Seeder")

	cfg := config.Load()

	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer db.Close()

	fmt.Println("🔨 Running database migrations...")
	err = db.AutoMigrate(
		&models.User{},
		&models.Message{},
		&models.Poll{},
		&models.Vote{},
		&models.Note{},
	)
	if err != nil {
		log.Fatalf("❌ Migration failed: %v", err)
	}

	var pollCount int64
	db.Model(&models.Poll{}).Count(&pollCount)
	if pollCount > 0 {
		fmt.Printf("⚠️  Database already has %d polls. Clear it first? (y/N): ", pollCount)
		var answer string
		fmt.Scanln(&answer)
		if answer != "y" && answer != "Y" {
			fmt.Println("❌ Aborted. Database not modified.")
			return
		}
		fmt.Println("🗑️  Clearing existing data...")
		db.Exec("TRUNCATE TABLE votes, messages, notes, polls, users CASCADE")
	}

	alice := seedUser(db, aliceAddr)
	bob := seedUser(db, bobAddr)

	// Poll with two options and one vote per option
	pollID := mustID()
	options, err := models.SerializeOptions([]string{"Mainnet first", "More audits first"})
	if err != nil {
		log.Fatalf("❌ Failed to serialize options: %v", err)
	}
	poll := models.Poll{
		PollID:    pollID,
		Question:  "What should the protocol prioritize next?",
		Options:   options,
		CreatorID: alice.ID,
		EndBlock:  5_000_000,
		TxID:      demoTxID("poll-create"),
	}
	if err := db.Create(&poll).Error; err != nil {
		log.Fatalf("❌ Failed to seed poll: %v", err)
	}

	for i, voter := range []models.User{*alice, *bob} {
		secret, err := utils.GenerateSecret()
		if err != nil {
			log.Fatalf("❌ Failed to generate vote secret: %v", err)
		}
		vote := models.Vote{
			PollDbID:    poll.ID,
			VoterID:     voter.ID,
			OptionIndex: i,
			Nullifier:   utils.CreateCommitment(voter.Address+pollID, secret),
			TxID:        demoTxID(fmt.Sprintf("vote-%d", i)),
		}
		if err := db.Create(&vote).Error; err != nil {
			log.Fatalf("❌ Failed to seed vote: %v", err)
		}
	}

	// Anonymous message from Alice to Bob, demo-encrypted with Bob's address
	encrypted, err := utils.Encrypt("gm — the poll is live", bob.Address)
	if err != nil {
		log.Fatalf("❌ Failed to encrypt demo message: %v", err)
	}
	message := models.Message{
		MessageID:        mustID(),
		RecipientID:      bob.ID,
		SenderHash:       utils.StringToField(alice.Address),
		EncryptedContent: encrypted,
		TxID:             demoTxID("message-send"),
	}
	if err := db.Create(&message).Error; err != nil {
		log.Fatalf("❌ Failed to seed message: %v", err)
	}

	// A pinned note for Alice
	note := models.Note{
		NoteID:   mustID(),
		OwnerID:  alice.ID,
		IsPinned: true,
		TxID:     demoTxID("note-create"),
	}
	if err := db.Create(&note).Error; err != nil {
		log.Fatalf("❌ Failed to seed note: %v", err)
	}

	fmt.Println("✅ Seeded 2 users, 1 poll, 2 votes, 1 message, 1 note")
	fmt.Printf("   Poll: GET /api/poll/%s\n", pollID)
	fmt.Printf("   Inbox: GET /api/message/inbox/%s\n", bob.Address)
}

func seedUser(db *database.DB, address string) *models.User {
	insert := models.User{Address: address}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "address"}},
		DoNothing: true,
	}).Create(&insert).Error

	var user models.User
	if err == nil {
		err = db.Where("address = ?", address).First(&user).Error
	}
	if err != nil {
		log.Fatalf("❌ Failed to seed user %s: %v", address, err)
	}
	return &user
}

func mustID() string {
	id, err := utils.GenerateID()
	if err != nil {
		log.Fatalf("❌ Failed to generate ID: %v", err)
	}
	return id
}

// demoTxID fabricates a stable at1... style reference; nothing verifies these
func demoTxID(label string) string {
	return "at1" + utils.Hash("demo-"+label)[:58]
}
