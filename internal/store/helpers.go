package store

import (
	"database/sql"
	"fmt"

	"github.com/tasklane/chatbot/internal/models"
)

// nilIfEmpty returns nil if s is empty, otherwise returns s.
// Used for nullable database columns.
func nilIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// scanExchanges scans all Exchange rows from a result set.
func scanExchanges(rows *sql.Rows) ([]models.Exchange, error) {
	var out []models.Exchange
	for rows.Next() {
		var ex models.Exchange
		var intent sql.NullString
		if err := rows.Scan(&ex.ID, &ex.UserID, &ex.Message, &ex.Reply, &intent, &ex.CommandReady, &ex.Time); err != nil {
			return nil, fmt.Errorf("scan exchange failed: %w", err)
		}
		ex.Intent = intent.String
		out = append(out, ex)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("exchange rows iteration failed: %w", err)
	}
	return out, nil
}
