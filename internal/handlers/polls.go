package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/privylabs/privyrecord/internal/models"
)

// CreatePollRequest mirrors a poll creation settled on chain
type CreatePollRequest struct {
	PollID         string   `json:"pollId"`
	Question       string   `json:"question"`
	Options        []string `json:"options"`
	CreatorAddress string   `json:"creatorAddress"`
	EndBlock       int64    `json:"endBlock"`
	TxID           string   `json:"txId"`
}

// CastVoteRequest mirrors a ballot settled on chain. OptionIndex is a pointer
// so a missing field is distinguishable from index 0.
type CastVoteRequest struct {
	VoterAddress string `json:"voterAddress"`
	OptionIndex  *int   `json:"optionIndex"`
	Nullifier    string `json:"nullifier"`
	TxID         string `json:"txId"`
}

// PollDetail is the single-poll response: the row plus deserialized options
// and the per-option tally
type PollDetail struct {
	models.Poll
	Options    []string `json:"options"`
	VoteCounts []int    `json:"voteCounts"`
	TotalVotes int      `json:"totalVotes"`
}

// PollSummary is the list response: options deserialized, no tally
type PollSummary struct {
	models.Poll
	Options []string `json:"options"`
}

// createPoll handles POST /api/poll/create
func (r *Router) createPoll(w http.ResponseWriter, req *http.Request) {
	var body CreatePollRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	options, err := models.SerializeOptions(body.Options)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to create poll")
		return
	}

	creator, err := r.ensureUser(body.CreatorAddress)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to create poll")
		return
	}

	poll := models.Poll{
		PollID:    body.PollID,
		Question:  body.Question,
		Options:   options,
		CreatorID: creator.ID,
		EndBlock:  body.EndBlock,
		TxID:      body.TxID,
	}
	if err := r.db.Create(&poll).Error; err != nil {
		if isUniqueViolation(err) {
			respondError(w, http.StatusConflict, "Poll already recorded")
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to create poll")
		return
	}

	r.publish("poll.created", map[string]string{
		"pollId":   poll.PollID,
		"question": poll.Question,
	})

	respondJSON(w, http.StatusCreated, poll)
}

// getPoll handles GET /api/poll/{pollId}. The tally is computed on read by
// counting votes per option index; no counters are maintained.
func (r *Router) getPoll(w http.ResponseWriter, req *http.Request) {
	vars := mux.Vars(req)

	var poll models.Poll
	err := r.db.Preload("Votes").Where("poll_id = ?", vars["pollId"]).First(&poll).Error
	if err != nil {
		if isNotFound(err) {
			respondError(w, http.StatusNotFound, "Poll not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to get poll")
		return
	}

	options, err := poll.OptionList()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to get poll")
		return
	}

	voteCounts := make([]int, len(options))
	for _, vote := range poll.Votes {
		if vote.OptionIndex >= 0 && vote.OptionIndex < len(voteCounts) {
			voteCounts[vote.OptionIndex]++
		}
	}

	respondJSON(w, http.StatusOK, PollDetail{
		Poll:       poll,
		Options:    options,
		VoteCounts: voteCounts,
		TotalVotes: len(poll.Votes),
	})
}

// listPolls handles GET /api/polls, newest first. Tallies are not computed
// here; the list ships raw votes and leaves counting to the detail endpoint.
func (r *Router) listPolls(w http.ResponseWriter, req *http.Request) {
	var polls []models.Poll
	if err := r.db.Preload("Votes").Order("created_at DESC").Find(&polls).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to get polls")
		return
	}

	summaries := make([]PollSummary, 0, len(polls))
	for _, poll := range polls {
		options, err := poll.OptionList()
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Failed to get polls")
			return
		}
		summaries = append(summaries, PollSummary{Poll: poll, Options: options})
	}

	respondJSON(w, http.StatusOK, summaries)
}

// castVote handles POST /api/poll/{pollId}/vote
func (r *Router) castVote(w http.ResponseWriter, req *http.Request) {
	vars := mux.Vars(req)

	var body CastVoteRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if body.OptionIndex == nil || *body.OptionIndex < 0 {
		respondError(w, http.StatusBadRequest, "Invalid option index")
		return
	}

	var poll models.Poll
	if err := r.db.Where("poll_id = ?", vars["pollId"]).First(&poll).Error; err != nil {
		if isNotFound(err) {
			respondError(w, http.StatusNotFound, "Poll not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to record vote")
		return
	}

	options, err := poll.OptionList()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to record vote")
		return
	}
	if *body.OptionIndex >= len(options) {
		respondError(w, http.StatusBadRequest, "Invalid option index")
		return
	}

	// The nullifier is the sole double-vote guard; it is trusted as opaque
	// client data and never recomputed here
	var existing models.Vote
	err = r.db.Where("nullifier = ?", body.Nullifier).First(&existing).Error
	if err == nil {
		respondError(w, http.StatusBadRequest, "Already voted on this poll")
		return
	}
	if !isNotFound(err) {
		respondError(w, http.StatusInternalServerError, "Failed to record vote")
		return
	}

	voter, err := r.ensureUser(body.VoterAddress)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to record vote")
		return
	}

	vote := models.Vote{
		PollDbID:    poll.ID,
		VoterID:     voter.ID,
		OptionIndex: *body.OptionIndex,
		Nullifier:   body.Nullifier,
		TxID:        body.TxID,
	}
	if err := r.db.Create(&vote).Error; err != nil {
		// Two ballots with the same nullifier racing past the pre-check land
		// here; the unique constraint decides and the loser is a double vote
		if isUniqueViolation(err) {
			respondError(w, http.StatusBadRequest, "Already voted on this poll")
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to record vote")
		return
	}

	r.publish("poll.voted", map[string]interface{}{
		"pollId":      poll.PollID,
		"optionIndex": vote.OptionIndex,
	})

	respondJSON(w, http.StatusCreated, vote)
}

// pollShareQR handles GET /api/poll/{pollId}/qr with a PNG QR of the share URL
func (r *Router) pollShareQR(w http.ResponseWriter, req *http.Request) {
	vars := mux.Vars(req)

	var poll models.Poll
	if err := r.db.Where("poll_id = ?", vars["pollId"]).First(&poll).Error; err != nil {
		if isNotFound(err) {
			respondError(w, http.StatusNotFound, "Poll not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to generate QR")
		return
	}

	png, err := qrcode.Encode(r.baseURL+"/poll/"+poll.PollID, qrcode.Medium, 256)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to generate QR")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}
