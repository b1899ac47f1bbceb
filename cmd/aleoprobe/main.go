// aleoprobe audits the record database against the Aleo network: it walks
// every recorded txId and asks the explorer whether the transaction actually
// exists. The record service trusts clients and never performs this check
// itself, so this is the operator's way to spot fabricated claims.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/privylabs/privyrecord/internal/aleo"
	"github.com/privylabs/privyrecord/internal/config"
	"github.com/privylabs/privyrecord/internal/database"
)

func main() {
	limit := flag.Int("limit", 0, "max transactions to probe (0 = all)")
	programs := flag.Bool("programs", false, "also verify the dapp programs are deployed")
	flag.Parse()

	cfg := config.Load()

	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer db.Close()

	client := aleo.NewClient(cfg.Aleo.APIURL, cfg.Aleo.Network)
	fmt.Printf("🔎 Probing %s (%s)\n", cfg.Aleo.APIURL, cfg.Aleo.Network)

	if *programs {
		for _, programID := range []string{"privymsg_v1.aleo", "privypoll_v1.aleo", "privynotes_v1.aleo"} {
			ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
			deployed, err := client.ProgramDeployed(ctx, programID)
			cancel()
			switch {
			case err != nil:
				fmt.Printf("⚠️  %s: %v\n", programID, err)
			case deployed:
				fmt.Printf("✅ %s deployed\n", programID)
			default:
				fmt.Printf("❌ %s NOT deployed\n", programID)
			}
		}
		fmt.Println()
	}

	txIDs := collectTxIDs(db)
	if *limit > 0 && len(txIDs) > *limit {
		txIDs = txIDs[:*limit]
	}
	fmt.Printf("📋 %d recorded transaction IDs to check\n", len(txIDs))

	var found, missing, failed int
	for _, txID := range txIDs {
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		exists, err := client.TransactionExists(ctx, txID)
		cancel()

		switch {
		case err != nil:
			failed++
			fmt.Printf("⚠️  %s: %v\n", txID, err)
		case exists:
			found++
		default:
			missing++
			fmt.Printf("❌ %s not found on network\n", txID)
		}
	}

	fmt.Println()
	fmt.Printf("✅ on-chain: %d   ❌ missing: %d   ⚠️ errors: %d\n", found, missing, failed)
}

// collectTxIDs gathers every distinct txId recorded across the mirror tables
func collectTxIDs(db *database.DB) []string {
	var txIDs []string
	for _, table := range []string{"messages", "polls", "votes", "notes"} {
		var ids []string
		if err := db.Table(table).Where("tx_id <> ''").Distinct("tx_id").Pluck("tx_id", &ids).Error; err != nil {
			log.Printf("⚠️  Failed to read %s: %v", table, err)
			continue
		}
		txIDs = append(txIDs, ids...)
	}

	seen := make(map[string]struct{}, len(txIDs))
	out := txIDs[:0]
	for _, id := range txIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
