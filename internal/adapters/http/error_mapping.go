package httpadapter

import (
	"net/http"

	"github.com/mkravchenko/receiptdrop/internal/core/domain"
)

// Validation problems are the caller's to fix; configuration gaps need the
// setup affordance; remote failures surface as gateway-class statuses.
func mapKindToStatus(kind string) int {
	switch kind {
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindConfiguration:
		return http.StatusConflict
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindService:
		return http.StatusBadGateway
	case domain.KindNetwork:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
