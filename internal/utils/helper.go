package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// DecodeJSONResponse reads the whole body of resp into dest. The body is closed.
func DecodeJSONResponse(resp *http.Response, dest any) error {

	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		slog.Error("Failed to read response body",
			slog.String("error", err.Error()),
			slog.String("url", resp.Request.URL.String()),
		)
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if len(body) == 0 {
		return errors.New("response body is empty")
	}

	if err := json.Unmarshal(body, dest); err != nil {
		slog.Error("Failed to parse response JSON",
			slog.String("error", err.Error()),
			slog.String("url", resp.Request.URL.String()),
		)
		return fmt.Errorf("invalid JSON format: %w", err)
	}

	return nil
}

func ValidateStruct(validate *validator.Validate, data any) error {
	if err := validate.Struct(data); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return fmt.Errorf("validation error: %w", validationErrs)
		}

		slog.Error("Unexpected validation error", slog.String("error", err.Error()))
		return fmt.Errorf("unexpected validation error: %w", err)
	}
	return nil
}
