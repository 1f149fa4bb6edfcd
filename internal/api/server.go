// Package api exposes statement conversion over HTTP.
package api

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/exp/slices"

	"github.com/statement-tools/cba-pdf-to-csv/internal/convert"
	"github.com/statement-tools/cba-pdf-to-csv/internal/money"
	"github.com/statement-tools/cba-pdf-to-csv/internal/types"
	"github.com/statement-tools/cba-pdf-to-csv/internal/writer"
)

// Transaction is the JSON rendering of one converted transaction. Amounts
// and balances are decimal strings; the amount is empty for records that
// move no money.
type Transaction struct {
	Date        string `json:"date"`
	Description string `json:"description"`
	Amount      string `json:"amount,omitempty"`
	Balance     string `json:"balance,omitempty"`
}

// ConvertResponse is the JSON response from the /api/convert endpoint.
type ConvertResponse struct {
	Success      bool          `json:"success"`
	Error        string        `json:"error,omitempty"`
	Kind         string        `json:"kind,omitempty"`
	Format       string        `json:"format,omitempty"`
	Count        int           `json:"count"`
	Transactions []Transaction `json:"transactions"`
	CSV          string        `json:"csv,omitempty"`
}

// Server wires the conversion pipeline into a Fiber app.
type Server struct {
	logger *log.Logger
}

// NewServer creates a server that logs through logger.
func NewServer(logger *log.Logger) *Server {
	return &Server{logger: logger}
}

// App builds the Fiber app with all routes registered.
func (s *Server) App() *fiber.App {
	app := fiber.New(fiber.Config{
		BodyLimit:             32 << 20,
		DisableStartupMessage: true,
	})
	app.Get("/api/health", s.handleHealth)
	app.Post("/api/convert", s.handleConvert)
	return app
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"formats": convert.Formats(),
	})
}

func (s *Server) handleConvert(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, `upload a statement PDF in the "file" form field`)
	}
	formatName := c.FormValue("format")
	if formatName == "" {
		return writeError(c, fiber.StatusBadRequest, fmt.Sprintf(`the "format" form field is required, one of %v`, convert.Formats()))
	}
	if !slices.Contains(convert.Formats(), formatName) {
		return writeError(c, fiber.StatusBadRequest, fmt.Sprintf("unknown format %q, available: %v", formatName, convert.Formats()))
	}

	tmp, err := os.CreateTemp("", "statement-*.pdf")
	if err != nil {
		return writeError(c, fiber.StatusInternalServerError, "could not store the upload")
	}
	tmpPath := tmp.Name()
	tmp.Close()
	defer os.Remove(tmpPath)
	if err := c.SaveFile(fileHeader, tmpPath); err != nil {
		return writeError(c, fiber.StatusInternalServerError, "could not store the upload")
	}

	s.logger.Info("Converting upload", "name", fileHeader.Filename, "size", fileHeader.Size, "format", formatName)
	txns, err := convert.Statement(tmpPath, formatName, s.logger)
	if err != nil {
		s.logger.Error("Conversion failed", "name", fileHeader.Filename, "error", err)
		return c.Status(fiber.StatusUnprocessableEntity).JSON(ConvertResponse{
			Error: err.Error(),
			Kind:  errorKind(err),
		})
	}

	var csvBuf bytes.Buffer
	if err := writer.WriteCSV(&csvBuf, txns); err != nil {
		return writeError(c, fiber.StatusInternalServerError, err.Error())
	}

	out := make([]Transaction, 0, len(txns))
	for _, txn := range txns {
		jt := Transaction{
			Date:        txn.Date.Format("2006-01-02"),
			Description: strings.ReplaceAll(txn.Description, "\n", " "),
		}
		if txn.Amount != nil {
			jt.Amount = money.Text(*txn.Amount)
		}
		if txn.Balance != nil {
			jt.Balance = money.Text(*txn.Balance)
		}
		out = append(out, jt)
	}

	return c.JSON(ConvertResponse{
		Success:      true,
		Format:       formatName,
		Count:        len(out),
		Transactions: out,
		CSV:          csvBuf.String(),
	})
}

// errorKind names the failure class for API clients.
func errorKind(err error) string {
	switch {
	case errors.Is(err, types.ErrBalanceMismatch):
		return "balance_mismatch"
	case errors.Is(err, types.ErrDate):
		return "date"
	case errors.Is(err, types.ErrAmount):
		return "amount"
	case errors.Is(err, types.ErrFormat):
		return "format"
	}
	return "internal"
}

func writeError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(ConvertResponse{Error: msg})
}
