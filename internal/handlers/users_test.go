package handlers

import (
	"net/http"
	"sync"
	"testing"

	"github.com/privylabs/privyrecord/internal/models"
)

const testAddress = "aleo1wamjpw5pqwusrh7glnqqk5rltfq0axf8dvk5g2jtn2lxrpgkyqqs0z3e2x"

func TestUpsertUserIdempotent(t *testing.T) {
	router := setupTest(t)

	var first, second models.User

	rec := doRequest(t, router, "POST", "/api/user", map[string]string{"address": testAddress})
	expectStatus(t, rec, http.StatusOK)
	decodeJSON(t, rec, &first)

	rec = doRequest(t, router, "POST", "/api/user", map[string]string{"address": testAddress})
	expectStatus(t, rec, http.StatusOK)
	decodeJSON(t, rec, &second)

	if first.ID != second.ID {
		t.Errorf("Expected same user row, got IDs %s and %s", first.ID, second.ID)
	}

	var count int64
	testDB.Model(&models.User{}).Where("address = ?", testAddress).Count(&count)
	if count != 1 {
		t.Errorf("Expected exactly 1 user row, got %d", count)
	}
}

func TestUpsertUserMissingAddress(t *testing.T) {
	router := setupTest(t)

	rec := doRequest(t, router, "POST", "/api/user", map[string]string{})
	expectStatus(t, rec, http.StatusBadRequest)

	var count int64
	testDB.Model(&models.User{}).Count(&count)
	if count != 0 {
		t.Errorf("Expected no user rows, got %d", count)
	}
}

func TestEnsureUserConcurrent(t *testing.T) {
	router := setupTest(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rec := doRequest(t, router, "POST", "/api/user", map[string]string{"address": testAddress})
			if rec.Code != http.StatusOK {
				t.Errorf("Concurrent upsert returned %d (body: %s)", rec.Code, rec.Body.String())
			}
		}()
	}
	wg.Wait()

	var count int64
	testDB.Model(&models.User{}).Where("address = ?", testAddress).Count(&count)
	if count != 1 {
		t.Errorf("Expected exactly 1 user row after concurrent upserts, got %d", count)
	}
}
