package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aaravmahajanofficial/safari-storefront/internal/models"
	"github.com/aaravmahajanofficial/safari-storefront/internal/utils"
	"github.com/go-playground/validator/v10"
)

// DefaultKey is where the cart snapshot lives in durable storage.
const DefaultKey = "safari-cart-storage"

const snapshotVersion = 0

var ErrSnapshotNotFound = errors.New("cart snapshot not found")

// Storage is durable key/value storage for the serialized cart.
type Storage interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
}

// envelope mirrors the persisted layout {"state":{"items":[...]},"version":0}.
type envelope struct {
	State   models.CartState `json:"state"`
	Version int              `json:"version"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func encodeSnapshot(items []models.CartLine) ([]byte, error) {
	if items == nil {
		items = []models.CartLine{}
	}

	return json.Marshal(envelope{State: models.CartState{Items: items}, Version: snapshotVersion})
}

// decodeSnapshot parses and validates a persisted cart. Any rule violation
// rejects the whole snapshot.
func decodeSnapshot(data []byte) ([]models.CartLine, error) {
	var env envelope

	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("failed to decode cart snapshot: %w", err)
	}

	if err := utils.ValidateStruct(validate, env.State); err != nil {
		return nil, fmt.Errorf("invalid cart snapshot: %w", err)
	}

	seen := make(map[string]struct{}, len(env.State.Items))
	for _, line := range env.State.Items {
		if _, dup := seen[line.ID]; dup {
			return nil, fmt.Errorf("invalid cart snapshot: duplicate product %s", line.ID)
		}
		seen[line.ID] = struct{}{}
	}

	return env.State.Items, nil
}
