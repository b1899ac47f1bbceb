package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/privylabs/privyrecord/internal/models"
)

// SendMessageRequest mirrors the claim a frontend makes after the wallet
// settled a message transaction on chain
type SendMessageRequest struct {
	MessageID        string `json:"messageId"`
	RecipientAddress string `json:"recipientAddress"`
	SenderHash       string `json:"senderHash"`
	EncryptedContent string `json:"encryptedContent"`
	TxID             string `json:"txId"`
}

// sendMessage handles POST /api/message/send
func (r *Router) sendMessage(w http.ResponseWriter, req *http.Request) {
	var body SendMessageRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	recipient, err := r.ensureUser(body.RecipientAddress)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to record message")
		return
	}

	message := models.Message{
		MessageID:        body.MessageID,
		RecipientID:      recipient.ID,
		SenderHash:       body.SenderHash,
		EncryptedContent: body.EncryptedContent,
		TxID:             body.TxID,
	}
	if err := r.db.Create(&message).Error; err != nil {
		if isUniqueViolation(err) {
			respondError(w, http.StatusConflict, "Message already recorded")
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to record message")
		return
	}

	r.publish("message.received", map[string]string{
		"messageId": message.MessageID,
		"recipient": recipient.Address,
	})

	respondJSON(w, http.StatusCreated, message)
}

// getInbox handles GET /api/message/inbox/{address}. Unknown addresses get an
// empty inbox, not an error.
func (r *Router) getInbox(w http.ResponseWriter, req *http.Request) {
	vars := mux.Vars(req)

	var user models.User
	if err := r.db.Where("address = ?", vars["address"]).First(&user).Error; err != nil {
		if isNotFound(err) {
			respondJSON(w, http.StatusOK, []models.Message{})
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to get messages")
		return
	}

	messages := []models.Message{}
	if err := r.db.Where("recipient_id = ?", user.ID).Find(&messages).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to get messages")
		return
	}

	respondJSON(w, http.StatusOK, messages)
}
