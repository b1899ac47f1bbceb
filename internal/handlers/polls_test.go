package handlers

import (
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/privylabs/privyrecord/internal/models"
)

const voterAddress = "aleo1yr9n35r0h6rpun3l5jnnervl64ck9lyj3zypcc2glf788r3rgy9s6l7fe7"

func createTestPoll(t *testing.T, router *Router, pollID string, options []string) {
	t.Helper()
	rec := doRequest(t, router, "POST", "/api/poll/create", CreatePollRequest{
		PollID:         pollID,
		Question:       "Test question?",
		Options:        options,
		CreatorAddress: testAddress,
		EndBlock:       1_000_000,
		TxID:           "at1poll" + pollID,
	})
	expectStatus(t, rec, http.StatusCreated)
}

func castTestVote(t *testing.T, router *Router, pollID string, index int, nullifier string) *models.Vote {
	t.Helper()
	idx := index
	rec := doRequest(t, router, "POST", "/api/poll/"+pollID+"/vote", CastVoteRequest{
		VoterAddress: voterAddress,
		OptionIndex:  &idx,
		Nullifier:    nullifier,
		TxID:         "at1vote" + nullifier,
	})
	expectStatus(t, rec, http.StatusCreated)

	var vote models.Vote
	decodeJSON(t, rec, &vote)
	return &vote
}

func TestCreatePollAndGet(t *testing.T) {
	router := setupTest(t)
	createTestPoll(t, router, "poll-1", []string{"A", "B"})

	rec := doRequest(t, router, "GET", "/api/poll/poll-1", nil)
	expectStatus(t, rec, http.StatusOK)

	var detail PollDetail
	decodeJSON(t, rec, &detail)
	if len(detail.Options) != 2 || detail.Options[0] != "A" || detail.Options[1] != "B" {
		t.Errorf("Expected options [A B], got %v", detail.Options)
	}
	if detail.TotalVotes != 0 {
		t.Errorf("Expected 0 votes on a fresh poll, got %d", detail.TotalVotes)
	}
	if len(detail.VoteCounts) != 2 || detail.VoteCounts[0] != 0 || detail.VoteCounts[1] != 0 {
		t.Errorf("Expected voteCounts [0 0], got %v", detail.VoteCounts)
	}
}

func TestCreatePollDuplicateID(t *testing.T) {
	router := setupTest(t)
	createTestPoll(t, router, "poll-dup", []string{"A", "B"})

	rec := doRequest(t, router, "POST", "/api/poll/create", CreatePollRequest{
		PollID:         "poll-dup",
		Question:       "Replay",
		Options:        []string{"A", "B"},
		CreatorAddress: testAddress,
		TxID:           "at1replay",
	})
	expectStatus(t, rec, http.StatusConflict)
}

func TestGetPollNotFound(t *testing.T) {
	router := setupTest(t)

	rec := doRequest(t, router, "GET", "/api/poll/nonexistent", nil)
	expectStatus(t, rec, http.StatusNotFound)
}

func TestVoteTally(t *testing.T) {
	router := setupTest(t)
	createTestPoll(t, router, "poll-tally", []string{"A", "B"})

	castTestVote(t, router, "poll-tally", 0, "null-0")
	castTestVote(t, router, "poll-tally", 1, "null-1")

	rec := doRequest(t, router, "GET", "/api/poll/poll-tally", nil)
	expectStatus(t, rec, http.StatusOK)

	var detail PollDetail
	decodeJSON(t, rec, &detail)
	if detail.TotalVotes != 2 {
		t.Errorf("Expected totalVotes 2, got %d", detail.TotalVotes)
	}
	if len(detail.VoteCounts) != 2 || detail.VoteCounts[0] != 1 || detail.VoteCounts[1] != 1 {
		t.Errorf("Expected voteCounts [1 1], got %v", detail.VoteCounts)
	}
}

func TestCastVoteValidation(t *testing.T) {
	router := setupTest(t)
	createTestPoll(t, router, "poll-v", []string{"A", "B"})
	castTestVote(t, router, "poll-v", 0, "null-taken")

	negative := -1
	zero := 0
	outOfRange := 2

	tests := []struct {
		name           string
		pollID         string
		body           CastVoteRequest
		expectedStatus int
	}{
		{
			name:           "missing option index",
			pollID:         "poll-v",
			body:           CastVoteRequest{VoterAddress: voterAddress, Nullifier: "null-x"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "negative option index",
			pollID:         "poll-v",
			body:           CastVoteRequest{VoterAddress: voterAddress, OptionIndex: &negative, Nullifier: "null-x"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "option index out of range",
			pollID:         "poll-v",
			body:           CastVoteRequest{VoterAddress: voterAddress, OptionIndex: &outOfRange, Nullifier: "null-x"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "poll not found",
			pollID:         "nonexistent",
			body:           CastVoteRequest{VoterAddress: voterAddress, OptionIndex: &zero, Nullifier: "null-x"},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "duplicate nullifier",
			pollID:         "poll-v",
			body:           CastVoteRequest{VoterAddress: voterAddress, OptionIndex: &zero, Nullifier: "null-taken"},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, router, "POST", "/api/poll/"+tt.pollID+"/vote", tt.body)
			expectStatus(t, rec, tt.expectedStatus)
		})
	}

	// Only the setup vote should exist
	var count int64
	testDB.Model(&models.Vote{}).Count(&count)
	if count != 1 {
		t.Errorf("Expected 1 vote row after rejected ballots, got %d", count)
	}
}

func TestConcurrentVotesSameNullifier(t *testing.T) {
	router := setupTest(t)
	createTestPoll(t, router, "poll-race", []string{"A", "B"})

	var wg sync.WaitGroup
	results := make(chan int, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			idx := 0
			rec := doRequest(t, router, "POST", "/api/poll/poll-race/vote", CastVoteRequest{
				VoterAddress: fmt.Sprintf("aleo1racer%d", n),
				OptionIndex:  &idx,
				Nullifier:    "null-race",
				TxID:         fmt.Sprintf("at1race%d", n),
			})
			results <- rec.Code
		}(i)
	}
	wg.Wait()
	close(results)

	var created, rejected int
	for code := range results {
		switch code {
		case http.StatusCreated:
			created++
		case http.StatusBadRequest:
			rejected++
		default:
			t.Errorf("Unexpected status %d for racing vote", code)
		}
	}
	if created != 1 {
		t.Errorf("Expected exactly 1 accepted vote, got %d", created)
	}
	if rejected != 7 {
		t.Errorf("Expected 7 rejected votes, got %d", rejected)
	}

	var count int64
	testDB.Model(&models.Vote{}).Where("nullifier = ?", "null-race").Count(&count)
	if count != 1 {
		t.Errorf("Expected 1 vote row for the nullifier, got %d", count)
	}
}

func TestListPollsNewestFirst(t *testing.T) {
	router := setupTest(t)

	createTestPoll(t, router, "poll-old", []string{"A", "B"})
	time.Sleep(20 * time.Millisecond)
	createTestPoll(t, router, "poll-new", []string{"C", "D"})

	rec := doRequest(t, router, "GET", "/api/polls", nil)
	expectStatus(t, rec, http.StatusOK)

	var polls []PollSummary
	decodeJSON(t, rec, &polls)
	if len(polls) != 2 {
		t.Fatalf("Expected 2 polls, got %d", len(polls))
	}
	if polls[0].PollID != "poll-new" || polls[1].PollID != "poll-old" {
		t.Errorf("Expected newest first, got %s then %s", polls[0].PollID, polls[1].PollID)
	}
	if len(polls[0].Options) != 2 || polls[0].Options[0] != "C" {
		t.Errorf("Expected deserialized options [C D], got %v", polls[0].Options)
	}
}

func TestPollShareQR(t *testing.T) {
	router := setupTest(t)
	createTestPoll(t, router, "poll-qr", []string{"A", "B"})

	rec := doRequest(t, router, "GET", "/api/poll/poll-qr/qr", nil)
	expectStatus(t, rec, http.StatusOK)
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("Expected image/png, got %s", ct)
	}
	if rec.Body.Len() == 0 {
		t.Error("Expected non-empty PNG body")
	}

	rec = doRequest(t, router, "GET", "/api/poll/nonexistent/qr", nil)
	expectStatus(t, rec, http.StatusNotFound)
}
