package controllers

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
	"github.com/tealeg/xlsx"

	"github.com/vibely-app/vibely-backend/config"
	"github.com/vibely-app/vibely-backend/models"
	"github.com/vibely-app/vibely-backend/utils"
)

func reportPeriodRange(period string) (time.Time, time.Time, bool) {
	now := time.Now()
	switch period {
	case "day":
		start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		end := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 999999999, now.Location())
		return start, end, true
	case "week":
		end := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 999999999, now.Location())
		start := end.AddDate(0, 0, -6)
		start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
		return start, end, true
	case "month":
		return now.AddDate(0, 0, -30).Truncate(24 * time.Hour), now.Add(24 * time.Hour), true
	}
	return time.Time{}, time.Time{}, false
}

type coinReportSummary struct {
	TotalTransactions int
	TotalCredits      int
	TotalDebits       int
	TotalPurchased    int
	TotalGifted       int
	TotalWallets      int
}

func summarizeCoinTransactions(transactions []models.CoinTransaction) coinReportSummary {
	var summary coinReportSummary
	walletSet := make(map[uint]bool)
	for _, txn := range transactions {
		summary.TotalTransactions++
		walletSet[txn.WalletID] = true
		if txn.Type == models.TransactionTypeCredit {
			summary.TotalCredits += txn.Amount
		} else {
			summary.TotalDebits += txn.Amount
		}
		switch txn.Category {
		case models.CategoryPurchase:
			summary.TotalPurchased += txn.Amount
		case models.CategoryGiftSent:
			summary.TotalGifted += txn.Amount
		}
	}
	summary.TotalWallets = len(walletSet)
	return summary
}

// Admin: Download coin transactions report as Excel
func DownloadTransactionsReportExcel(c *gin.Context) {
	utils.LogInfo("DownloadTransactionsReportExcel called")

	period := c.DefaultQuery("period", "day")
	startDate, endDate, ok := reportPeriodRange(period)
	if !ok {
		utils.LogError("Invalid period specified: %s", period)
		utils.BadRequest(c, "Invalid period", "Period must be day, week, or month")
		return
	}
	utils.LogDebug("Generating Excel report for period: %s", period)

	var transactions []models.CoinTransaction
	if err := config.DB.Where("created_at >= ? AND created_at <= ?", startDate, endDate).
		Preload("Wallet").
		Order("created_at DESC").
		Find(&transactions).Error; err != nil {
		utils.LogError("Failed to fetch transactions: %v", err)
		utils.InternalServerError(c, "Failed to fetch transactions", err.Error())
		return
	}
	utils.LogDebug("Retrieved %d transactions for Excel report", len(transactions))

	summary := summarizeCoinTransactions(transactions)

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Coin Transactions")
	if err != nil {
		utils.LogError("Failed to create Excel sheet: %v", err)
		utils.InternalServerError(c, "Failed to create Excel sheet", err.Error())
		return
	}

	titleRow := sheet.AddRow()
	titleRow.AddCell().SetString("VIBELY - Coin Transactions Report")
	periodRow := sheet.AddRow()
	periodRow.AddCell().SetString("Period: " + strings.ToUpper(period) + " | " + startDate.Format("2006-01-02") + " to " + endDate.Format("2006-01-02"))
	sheet.AddRow() // spacing

	headers := []string{"Txn ID", "Wallet ID", "User ID", "Date", "Type", "Category", "Amount", "Description"}
	headerRow := sheet.AddRow()
	for _, h := range headers {
		cell := headerRow.AddCell()
		cell.SetString(h)
		style := xlsx.NewStyle()
		font := xlsx.DefaultFont()
		font.Bold = true
		style.Font = *font
		cell.SetStyle(style)
	}

	for _, txn := range transactions {
		row := sheet.AddRow()
		row.AddCell().SetInt(int(txn.ID))
		row.AddCell().SetInt(int(txn.WalletID))
		row.AddCell().SetInt(int(txn.Wallet.UserID))
		row.AddCell().SetString(txn.CreatedAt.Format("2006-01-02 15:04"))
		row.AddCell().SetString(txn.Type)
		row.AddCell().SetString(txn.Category)
		row.AddCell().SetInt(txn.Amount)
		row.AddCell().SetString(txn.Description)
	}

	sheet.AddRow() // spacing

	summaryRow := sheet.AddRow()
	summaryRow.AddCell().SetString("Summary")
	style := xlsx.NewStyle()
	font := xlsx.DefaultFont()
	font.Bold = true
	style.Font = *font
	summaryRow.Cells[0].SetStyle(style)

	summaryData := [][]string{
		{"Total Transactions", fmt.Sprintf("%d", summary.TotalTransactions)},
		{"Total Credits", fmt.Sprintf("%d", summary.TotalCredits)},
		{"Total Debits", fmt.Sprintf("%d", summary.TotalDebits)},
		{"Coins Purchased", fmt.Sprintf("%d", summary.TotalPurchased)},
		{"Coins Gifted", fmt.Sprintf("%d", summary.TotalGifted)},
		{"Active Wallets", fmt.Sprintf("%d", summary.TotalWallets)},
	}
	for _, data := range summaryData {
		row := sheet.AddRow()
		row.AddCell().SetString(data[0])
		row.AddCell().SetString(data[1])
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=coin_transactions_%s.xlsx", period))
	if err := file.Write(c.Writer); err != nil {
		utils.LogError("Failed to write Excel file: %v", err)
		utils.InternalServerError(c, "Failed to write Excel file", err.Error())
		return
	}
	utils.LogInfo("Successfully generated Excel report for period %s", period)
}

// Admin: Download coin transactions report as PDF
func DownloadTransactionsReportPDF(c *gin.Context) {
	utils.LogInfo("DownloadTransactionsReportPDF called")

	period := c.DefaultQuery("period", "day")
	startDate, endDate, ok := reportPeriodRange(period)
	if !ok {
		utils.LogError("Invalid period specified: %s", period)
		utils.BadRequest(c, "Invalid period", "Period must be day, week, or month")
		return
	}
	utils.LogDebug("Generating PDF report for period: %s", period)

	var transactions []models.CoinTransaction
	if err := config.DB.Where("created_at >= ? AND created_at <= ?", startDate, endDate).
		Preload("Wallet").
		Order("created_at DESC").
		Find(&transactions).Error; err != nil {
		utils.LogError("Failed to fetch transactions: %v", err)
		utils.InternalServerError(c, "Failed to fetch transactions", err.Error())
		return
	}
	utils.LogDebug("Retrieved %d transactions for PDF report", len(transactions))

	summary := summarizeCoinTransactions(transactions)

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 20)
	pdf.Cell(0, 12, "VIBELY - Coin Transactions Report")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 8, "Period: "+strings.ToUpper(period)+" | "+startDate.Format("2006-01-02")+" to "+endDate.Format("2006-01-02"))
	pdf.Ln(12)

	headers := []string{"Txn ID", "Wallet ID", "User ID", "Date", "Type", "Category", "Amount", "Description"}
	colWidths := []float64{20, 22, 22, 35, 22, 32, 22, 90}
	pdf.SetFont("Arial", "B", 11)
	for i, h := range headers {
		pdf.SetFillColor(200, 200, 200)
		pdf.CellFormat(colWidths[i], 9, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	fill := false
	for _, txn := range transactions {
		pdf.SetFillColor(245, 245, 245)
		if fill {
			pdf.SetFillColor(230, 240, 255)
		}
		fill = !fill
		pdf.CellFormat(colWidths[0], 8, fmt.Sprintf("%d", txn.ID), "1", 0, "C", fill, 0, "")
		pdf.CellFormat(colWidths[1], 8, fmt.Sprintf("%d", txn.WalletID), "1", 0, "C", fill, 0, "")
		pdf.CellFormat(colWidths[2], 8, fmt.Sprintf("%d", txn.Wallet.UserID), "1", 0, "C", fill, 0, "")
		pdf.CellFormat(colWidths[3], 8, txn.CreatedAt.Format("2006-01-02 15:04"), "1", 0, "C", fill, 0, "")
		pdf.CellFormat(colWidths[4], 8, txn.Type, "1", 0, "C", fill, 0, "")
		pdf.CellFormat(colWidths[5], 8, txn.Category, "1", 0, "C", fill, 0, "")
		pdf.CellFormat(colWidths[6], 8, fmt.Sprintf("%d", txn.Amount), "1", 0, "R", fill, 0, "")
		pdf.CellFormat(colWidths[7], 8, txn.Description, "1", 0, "L", fill, 0, "")
		pdf.Ln(-1)
	}

	pdf.Ln(8)
	pdf.SetFont("Arial", "B", 13)
	pdf.SetFillColor(220, 230, 250)
	pdf.CellFormat(70, 10, "Summary", "1", 0, "C", true, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 11)
	pdf.SetFillColor(255, 255, 255)
	summaryData := [][]string{
		{"Total Transactions", fmt.Sprintf("%d", summary.TotalTransactions)},
		{"Total Credits", fmt.Sprintf("%d", summary.TotalCredits)},
		{"Total Debits", fmt.Sprintf("%d", summary.TotalDebits)},
		{"Coins Purchased", fmt.Sprintf("%d", summary.TotalPurchased)},
		{"Coins Gifted", fmt.Sprintf("%d", summary.TotalGifted)},
		{"Active Wallets", fmt.Sprintf("%d", summary.TotalWallets)},
	}
	for _, data := range summaryData {
		pdf.CellFormat(50, 8, data[0], "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 8, data[1], "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=coin_transactions_%s.pdf", period))
	if err := pdf.Output(c.Writer); err != nil {
		utils.LogError("Failed to write PDF file: %v", err)
		utils.InternalServerError(c, "Failed to write PDF file", err.Error())
		return
	}
	utils.LogInfo("Successfully generated PDF report for period %s", period)
}
