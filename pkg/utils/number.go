package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GeneratePurchaseNo generates a unique purchase number
func GeneratePurchaseNo() string {
	return "PO-" + strings.ToUpper(uuid.New().String()[:8])
}

// GenerateInvoiceNo generates a unique invoice number
func GenerateInvoiceNo() string {
	return "INV-" + strings.ToUpper(uuid.New().String()[:8])
}
