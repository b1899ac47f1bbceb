package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/privylabs/privyrecord/internal/models"
)

// CreateNoteRequest mirrors an encrypted note settled on chain. The note body
// itself never reaches this service; only the on-chain reference does.
type CreateNoteRequest struct {
	NoteID       string `json:"noteId"`
	OwnerAddress string `json:"ownerAddress"`
	TxID         string `json:"txId"`
}

// UpdateNoteRequest is a partial update: only supplied fields are changed
type UpdateNoteRequest struct {
	IsPinned *bool   `json:"isPinned"`
	TxID     *string `json:"txId"`
}

// createNote handles POST /api/notes/create
func (r *Router) createNote(w http.ResponseWriter, req *http.Request) {
	var body CreateNoteRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	owner, err := r.ensureUser(body.OwnerAddress)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to create note")
		return
	}

	note := models.Note{
		NoteID:  body.NoteID,
		OwnerID: owner.ID,
		TxID:    body.TxID,
	}
	if err := r.db.Create(&note).Error; err != nil {
		if isUniqueViolation(err) {
			respondError(w, http.StatusConflict, "Note already recorded")
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to create note")
		return
	}

	r.publish("note.created", map[string]string{
		"noteId": note.NoteID,
		"owner":  owner.Address,
	})

	respondJSON(w, http.StatusCreated, note)
}

// listNotes handles GET /api/notes/{address}, newest first. Unknown owners get
// an empty list, not an error.
func (r *Router) listNotes(w http.ResponseWriter, req *http.Request) {
	vars := mux.Vars(req)

	var user models.User
	if err := r.db.Where("address = ?", vars["address"]).First(&user).Error; err != nil {
		if isNotFound(err) {
			respondJSON(w, http.StatusOK, []models.Note{})
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to get notes")
		return
	}

	notes := []models.Note{}
	if err := r.db.Where("owner_id = ?", user.ID).Order("created_at DESC").Find(&notes).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to get notes")
		return
	}

	respondJSON(w, http.StatusOK, notes)
}

// getNote handles GET /api/notes/get/{noteId}
func (r *Router) getNote(w http.ResponseWriter, req *http.Request) {
	vars := mux.Vars(req)

	var note models.Note
	if err := r.db.Where("note_id = ?", vars["noteId"]).First(&note).Error; err != nil {
		if isNotFound(err) {
			respondError(w, http.StatusNotFound, "Note not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to get note")
		return
	}

	respondJSON(w, http.StatusOK, note)
}

// updateNote handles PUT /api/notes/{noteId}: pin state and txId only
func (r *Router) updateNote(w http.ResponseWriter, req *http.Request) {
	vars := mux.Vars(req)

	var body UpdateNoteRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	var note models.Note
	if err := r.db.Where("note_id = ?", vars["noteId"]).First(&note).Error; err != nil {
		if isNotFound(err) {
			respondError(w, http.StatusNotFound, "Note not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to update note")
		return
	}

	updates := map[string]interface{}{}
	if body.IsPinned != nil {
		updates["is_pinned"] = *body.IsPinned
	}
	if body.TxID != nil && *body.TxID != "" {
		updates["tx_id"] = *body.TxID
	}

	if len(updates) > 0 {
		if err := r.db.Model(&note).Updates(updates).Error; err != nil {
			respondError(w, http.StatusInternalServerError, "Failed to update note")
			return
		}
		// Reload so the response carries the stored row, updatedAt included
		if err := r.db.First(&note, "id = ?", note.ID).Error; err != nil {
			respondError(w, http.StatusInternalServerError, "Failed to update note")
			return
		}
	}

	r.publish("note.updated", map[string]string{"noteId": note.NoteID})

	respondJSON(w, http.StatusOK, note)
}

// deleteNote handles DELETE /api/notes/{noteId}
func (r *Router) deleteNote(w http.ResponseWriter, req *http.Request) {
	vars := mux.Vars(req)

	result := r.db.Where("note_id = ?", vars["noteId"]).Delete(&models.Note{})
	if result.Error != nil {
		respondError(w, http.StatusInternalServerError, "Failed to delete note")
		return
	}
	if result.RowsAffected == 0 {
		respondError(w, http.StatusNotFound, "Note not found")
		return
	}

	r.publish("note.deleted", map[string]string{"noteId": vars["noteId"]})

	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}
