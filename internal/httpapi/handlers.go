package httpapi

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ticketdraft/ticket-draft-backend/internal/draft"
	"github.com/ticketdraft/ticket-draft-backend/internal/export"
)

func GenerateCode() (string, error) {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	code := make([]byte, 6)
	for i := 0; i < 6; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		code[i] = charset[num.Int64()]
	}
	return string(code), nil
}

// CreateRoom generates an unused code and persists the room.
func CreateRoom(store draft.Store, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var code string
		for {
			c, err := GenerateCode()
			if err != nil {
				http.Error(w, "failed to generate code", http.StatusInternalServerError)
				return
			}
			_, err = store.GetRoom(r.Context(), c)
			if errors.Is(err, draft.ErrRoomNotFound) {
				code = c
				break
			}
			if err != nil {
				http.Error(w, "store unavailable", http.StatusInternalServerError)
				return
			}
			log.Info("collision on code, regenerating", zap.String("code", c))
		}

		if _, err := store.EnsureRoom(r.Context(), code); err != nil {
			http.Error(w, "failed to create room", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(struct {
			Code string `json:"code"`
		}{Code: code})
	}
}

type joinRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// JoinRoom upserts the player by case-insensitive email and syncs the draft
// order with the submitted display name.
func JoinRoom(store draft.Store, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := chi.URLParam(r, "code")

		var req joinRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}

		player, err := draft.Join(r.Context(), store, code, req.Name, req.Email)
		if errors.Is(err, draft.ErrValidation) {
			http.Error(w, "room, name, and email are required", http.StatusBadRequest)
			return
		}
		if err != nil {
			log.Error("join failed", zap.String("room", code), zap.Error(err))
			http.Error(w, "join failed", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(struct {
			Code string `json:"code"`
			Name string `json:"name"`
		}{Code: player.RoomCode, Name: player.Name})
	}
}

// ExportCSV streams the drafted games as delimited text.
func ExportCSV(store draft.Store, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := strings.ToUpper(chi.URLParam(r, "code"))
		games, err := store.ListGames(r.Context(), code)
		if err != nil {
			http.Error(w, "store unavailable", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "draft_"+code+".csv"))
		if err := export.CSV(w, games); err != nil {
			log.Error("csv export", zap.String("room", code), zap.Error(err))
		}
	}
}

// ExportXLSX streams the full board as a spreadsheet with the resale
// bookkeeping columns left blank.
func ExportXLSX(store draft.Store, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := strings.ToUpper(chi.URLParam(r, "code"))
		games, err := store.ListGames(r.Context(), code)
		if err != nil {
			http.Error(w, "store unavailable", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "draft_"+code+".xlsx"))
		if err := export.XLSX(w, games); err != nil {
			log.Error("xlsx export", zap.String("room", code), zap.Error(err))
		}
	}
}

func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}
