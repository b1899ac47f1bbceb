package handlers

import (
	"encoding/json"
	"net/http"

	"gorm.io/gorm/clause"

	"github.com/privylabs/privyrecord/internal/models"
)

// ensureUser is the idempotent get-or-create every handler goes through when it
// needs a User foreign key. The insert is ON CONFLICT DO NOTHING on the unique
// address column, so two concurrent first references to the same address cannot
// produce duplicate rows; the refetch returns whichever insert won.
func (r *Router) ensureUser(address string) (*models.User, error) {
	insert := models.User{Address: address}
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "address"}},
		DoNothing: true,
	}).Create(&insert).Error
	if err != nil {
		return nil, err
	}

	// Refetch into a fresh struct: when the insert lost the race its generated
	// ID never landed, and a primed primary key would poison the lookup
	var user models.User
	if err := r.db.Where("address = ?", address).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// upsertUser handles POST /api/user
func (r *Router) upsertUser(w http.ResponseWriter, req *http.Request) {
	var body struct {
		Address string `json:"address"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if body.Address == "" {
		respondError(w, http.StatusBadRequest, "address is required")
		return
	}

	user, err := r.ensureUser(body.Address)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	respondJSON(w, http.StatusOK, user)
}
