package services

import (
	"database/sql"
	"encoding/base64"
	"fmt"
	"log"
	"strings"
	"time"

	qrcode "github.com/skip2/go-qrcode"

	"apex-academy/app/database"
	"apex-academy/app/metrics"
	"apex-academy/app/models"
)

// receiptRetries bounds how many sequence numbers RecordPayment tries when
// two payments land in the same daily slot.
const receiptRetries = 3

// FormatReceiptReference builds the printed receipt number: RCP, the payment
// date, and a 4-digit daily sequence.
func FormatReceiptReference(day time.Time, seq int) string {
	return fmt.Sprintf("RCP-%s-%04d", day.Format("20060102"), seq)
}

// RecordPayment generates the receipt reference and inserts the payment. The
// reference is the day's payment count plus one; if a concurrent insert takes
// the same number the unique index rejects it and the next number is tried.
func RecordPayment(db *sql.DB, payment *models.Payment) error {
	if payment.PaidAt.IsZero() {
		payment.PaidAt = time.Now()
	}

	count, err := database.CountPaymentsOnDate(db, payment.PaidAt)
	if err != nil {
		return err
	}

	for attempt := 0; attempt < receiptRetries; attempt++ {
		payment.Reference = FormatReceiptReference(payment.PaidAt, count+1+attempt)
		err = database.CreatePayment(db, payment)
		if err == nil {
			metrics.PaymentsRecorded.Inc()
			log.Printf("Recorded payment %s for player %s: %s %s",
				payment.Reference, payment.PlayerID, payment.Amount.StringFixed(2), payment.Method)
			return nil
		}
		if !strings.Contains(err.Error(), "duplicate key") {
			return err
		}
	}
	return fmt.Errorf("failed to allocate receipt reference: %v", err)
}

// AssignPackage points the player at a package, resetting the credit balance,
// and optionally records the counter payment under a fresh receipt reference.
// A failed attempt rolls back in full, so retrying after a reference
// collision repeats the whole assignment.
func AssignPackage(db *sql.DB, playerID, packageID string, payment *models.Payment) error {
	if payment == nil {
		return database.AssignPackageToPlayer(db, playerID, packageID, nil)
	}

	if payment.PaidAt.IsZero() {
		payment.PaidAt = time.Now()
	}

	count, err := database.CountPaymentsOnDate(db, payment.PaidAt)
	if err != nil {
		return err
	}

	for attempt := 0; attempt < receiptRetries; attempt++ {
		payment.Reference = FormatReceiptReference(payment.PaidAt, count+1+attempt)
		err = database.AssignPackageToPlayer(db, playerID, packageID, payment)
		if err == nil {
			metrics.PaymentsRecorded.Inc()
			log.Printf("Assigned package %s to player %s with payment %s",
				packageID, playerID, payment.Reference)
			return nil
		}
		if !strings.Contains(err.Error(), "duplicate key") {
			return err
		}
	}
	return fmt.Errorf("failed to allocate receipt reference: %v", err)
}

// BuildReceipt assembles the printable receipt for a payment, including a QR
// code that resolves back to the receipt page. baseURL comes from the
// request; when empty the QR encodes just the reference.
func BuildReceipt(db *sql.DB, academyName, baseURL string, payment *models.Payment) (*models.Receipt, error) {
	receipt := &models.Receipt{
		Payment:     payment,
		PlayerName:  payment.PlayerName,
		AcademyName: academyName,
		IssuedAt:    time.Now(),
	}

	player, err := database.GetPlayerByID(db, payment.PlayerID)
	if err != nil {
		return nil, err
	}
	if player != nil {
		receipt.PlayerName = player.FullName()
		receipt.BranchName = player.BranchName
	}

	png, err := ReceiptQRCode(baseURL, payment.Reference)
	if err != nil {
		return nil, err
	}
	receipt.QRCode = base64.StdEncoding.EncodeToString(png)

	return receipt, nil
}

// ReceiptQRCode renders the QR image for a receipt reference as PNG bytes.
func ReceiptQRCode(baseURL, reference string) ([]byte, error) {
	payload := ReceiptQRPayload(baseURL, reference)
	png, err := qrcode.Encode(payload, qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("failed to generate receipt QR: %v", err)
	}
	return png, nil
}

// ReceiptQRPayload is what the receipt QR encodes: the receipt page URL when
// a base URL is known, otherwise the bare reference.
func ReceiptQRPayload(baseURL, reference string) string {
	if baseURL == "" {
		return reference
	}
	return strings.TrimRight(baseURL, "/") + "/receipts/" + reference
}
