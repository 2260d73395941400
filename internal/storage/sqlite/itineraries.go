package sqlite

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mmynk/planbuddy/internal/models"
)

// SaveItinerary stores a finalized itinerary as a JSON document.
// Itineraries are immutable, so the whole record is one row.
func (s *SQLiteStore) SaveItinerary(ctx context.Context, ownerID string, it *models.FinalizedItinerary) error {
	data, err := json.Marshal(it)
	if err != nil {
		return fmt.Errorf("failed to encode itinerary: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO itineraries (id, owner_id, date, data, finalized_at, seq)
		VALUES (?, ?, ?, ?, ?, (SELECT COALESCE(MAX(seq) + 1, 0) FROM itineraries WHERE owner_id = ?))`,
		it.ID, ownerID, it.Date, string(data), it.FinalizedAt, ownerID,
	)
	if err != nil {
		return fmt.Errorf("failed to insert itinerary: %w", err)
	}
	return nil
}

// ListItineraries returns the owner's itineraries in the order they were saved.
func (s *SQLiteStore) ListItineraries(ctx context.Context, ownerID string) ([]*models.FinalizedItinerary, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT data FROM itineraries WHERE owner_id = ? ORDER BY seq",
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list itineraries: %w", err)
	}
	defer rows.Close()

	var out []*models.FinalizedItinerary
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan itinerary: %w", err)
		}
		it := &models.FinalizedItinerary{}
		if err := json.Unmarshal([]byte(data), it); err != nil {
			return nil, fmt.Errorf("failed to decode itinerary: %w", err)
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate itineraries: %w", err)
	}
	return out, nil
}
