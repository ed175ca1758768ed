package services

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finsight/finsight-backend/internal/dto"
	"github.com/finsight/finsight-backend/internal/errs"
	"github.com/finsight/finsight-backend/internal/models"
	"github.com/finsight/finsight-backend/internal/store"
	"github.com/finsight/finsight-backend/pkg/helpers"
)

var requiredCSVColumns = []string{"date", "category", "amount", "merchant"}

// ImportCSV parses and validates the file row by row, committing the valid
// rows even when others fail. Row numbers in the error list count the header
// line as row 1.
func (s *transactionService) ImportCSV(ctx context.Context, userID int, filename string, file io.Reader) (dto.ImportResult, error) {
	result := dto.ImportResult{}

	if userID == 0 {
		return result, errs.NewValidationError("MISSING_USER_ID", "userId is required")
	}
	if !strings.HasSuffix(strings.ToLower(filename), ".csv") {
		return result, errs.NewValidationError("INVALID_FILE_TYPE", "Only CSV files are allowed")
	}

	if _, err := s.users.Get(ctx, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return result, errs.NewValidationError("USER_NOT_FOUND", "User not found")
		}
		return result, err
	}

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return result, errs.NewValidationError("INVALID_CSV_FORMAT", "Malformed CSV file")
	}
	if len(records) < 2 {
		return result, errs.NewValidationError("EMPTY_CSV",
			"CSV file must contain headers and at least one data row")
	}

	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = strings.ToLower(strings.TrimSpace(h))
	}
	if missing := missingColumns(headers); len(missing) > 0 {
		return result, errs.NewValidationError("INVALID_CSV_FORMAT",
			"Missing required columns: "+strings.Join(missing, ", "))
	}

	pending := []models.Transaction{}
	rowErrors := []dto.ImportRowError{}

	for i, values := range records[1:] {
		rowNum := i + 2 // header is row 1
		t, rowErr := parseCSVRow(headers, values, userID)
		if rowErr != "" {
			rowErrors = append(rowErrors, dto.ImportRowError{Row: rowNum, Error: rowErr})
			continue
		}
		pending = append(pending, t)
	}

	result.Errors = rowErrors
	if len(pending) == 0 {
		return result, nil
	}

	inserted, err := s.txs.CreateBatch(ctx, pending)
	if err != nil {
		return result, err
	}

	var balanceChange float64
	for _, t := range inserted {
		balanceChange += balanceDelta(t)
	}

	updatedUser, err := s.users.AdjustBalance(ctx, userID, balanceChange)
	if err != nil {
		return result, err
	}

	s.reconcile(ctx, userID)

	result.Message = "CSV uploaded successfully"
	result.BatchID = uuid.NewString()
	result.Imported = len(inserted)
	result.BalanceChange = round2(balanceChange)
	result.NewBalance = round2(updatedUser.Balance)
	result.Transactions = inserted
	return result, nil
}

func missingColumns(headers []string) []string {
	present := map[string]bool{}
	for _, h := range headers {
		present[h] = true
	}
	missing := []string{}
	for _, col := range requiredCSVColumns {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	return missing
}

// parseCSVRow validates one data row, returning the transaction or a
// human-readable reason.
func parseCSVRow(headers, values []string, userID int) (models.Transaction, string) {
	if len(values) < len(headers) {
		return models.Transaction{}, "Incomplete row data"
	}

	row := map[string]string{}
	for i, h := range headers {
		row[h] = strings.TrimSpace(values[i])
	}

	if row["date"] == "" || row["category"] == "" || row["amount"] == "" || row["merchant"] == "" {
		return models.Transaction{}, "Missing required field"
	}

	amount, err := decimal.NewFromString(row["amount"])
	if err != nil || !amount.IsPositive() {
		return models.Transaction{}, "Invalid amount (must be positive number)"
	}

	date, ok := parseImportDate(row["date"])
	if !ok {
		return models.Transaction{}, "Invalid date format (use YYYY-MM-DD or MM/DD/YYYY)"
	}

	txType := models.TypeDebit
	if raw := row["type"]; raw != "" {
		parsed, ok := parseTransactionType(raw)
		if !ok {
			return models.Transaction{}, `Type must be either "debit" or "credit"`
		}
		txType = parsed
	}

	description := row["description"]
	if description == "" {
		description = "Imported: " + row["merchant"]
	}

	return models.Transaction{
		UserID:      userID,
		Amount:      amount.InexactFloat64(),
		Category:    row["category"],
		Merchant:    row["merchant"],
		Date:        date,
		Type:        txType,
		Description: helpers.Ptr(description),
	}, ""
}

// parseImportDate normalizes YYYY-MM-DD and MM/DD/YYYY inputs to ISO.
func parseImportDate(raw string) (string, bool) {
	if strings.Contains(raw, "/") {
		parts := strings.Split(raw, "/")
		if len(parts) != 3 {
			return "", false
		}
		raw = parts[2] + "-" + pad2(parts[0]) + "-" + pad2(parts[1])
	}
	t, ok := parseDate(raw)
	if !ok {
		return "", false
	}
	return t.Format(dateLayout), true
}

func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}
