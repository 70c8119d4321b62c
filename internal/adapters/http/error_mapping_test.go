package httpadapter

import (
	"net/http"
	"testing"

	"github.com/mkravchenko/receiptdrop/internal/core/domain"
)

func TestMapKindToStatus(t *testing.T) {
	cases := map[string]int{
		domain.KindValidation:    http.StatusBadRequest,
		domain.KindConfiguration: http.StatusConflict,
		domain.KindNotFound:      http.StatusNotFound,
		domain.KindService:       http.StatusBadGateway,
		domain.KindNetwork:       http.StatusGatewayTimeout,
		domain.KindInternal:      http.StatusInternalServerError,
		"something-else":         http.StatusInternalServerError,
	}
	for kind, want := range cases {
		if got := mapKindToStatus(kind); got != want {
			t.Errorf("mapKindToStatus(%q) = %d, want %d", kind, got, want)
		}
	}
}
