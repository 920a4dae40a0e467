package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/noah-isme/mockprep-api/internal/models"
	"github.com/noah-isme/mockprep-api/internal/repository"
)

const (
	exportSummarySheet = "Summary"
	exportAnswersSheet = "Answers"
	exportTimeLayout   = "2006-01-02 15:04:05"
)

// InterviewReport is a rendered spreadsheet for one session.
type InterviewReport struct {
	Filename string
	Content  []byte
}

// InterviewExportService renders interview sessions into spreadsheets.
type InterviewExportService interface {
	Export(ctx context.Context, userID, interviewID uint) (InterviewReport, error)
}

type interviewExportService struct {
	sessions repository.InterviewSessionRepository
	logger   zerolog.Logger
}

// NewInterviewExportService constructs the xlsx exporter.
func NewInterviewExportService(sessions repository.InterviewSessionRepository, logger zerolog.Logger) InterviewExportService {
	return &interviewExportService{
		sessions: sessions,
		logger:   logger.With().Str("component", "interview_export_service").Logger(),
	}
}

func (s *interviewExportService) Export(ctx context.Context, userID, interviewID uint) (InterviewReport, error) {
	session, err := s.sessions.GetByID(ctx, interviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return InterviewReport{}, ErrInterviewNotFound
		}
		return InterviewReport{}, err
	}
	if session.UserID != userID {
		return InterviewReport{}, ErrInterviewForbidden
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSummarySheet); err != nil {
		return InterviewReport{}, err
	}
	if _, err := f.NewSheet(exportAnswersSheet); err != nil {
		return InterviewReport{}, err
	}

	if err := writeSummarySheet(f, session); err != nil {
		return InterviewReport{}, fmt.Errorf("failed to create summary sheet: %w", err)
	}
	if err := writeAnswersSheet(f, session); err != nil {
		return InterviewReport{}, fmt.Errorf("failed to create answers sheet: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return InterviewReport{}, fmt.Errorf("failed to render workbook: %w", err)
	}

	s.logger.Info().Uint("interview_id", session.ID).Int("answers", len(session.Entries)).Msg("interview report exported")

	return InterviewReport{
		Filename: fmt.Sprintf("interview-%d.xlsx", session.ID),
		Content:  buf.Bytes(),
	}, nil
}

func writeSummarySheet(f *excelize.File, session models.InterviewSession) error {
	sheet := exportSummarySheet
	if err := f.SetColWidth(sheet, "A", "A", 22); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "B", "B", 48); err != nil {
		return err
	}

	labelStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	performance := "-"
	if session.Performance != nil {
		performance = fmt.Sprintf("%.2f", *session.Performance)
	}
	status := "In progress"
	if session.Completed {
		status = "Completed"
	}

	rows := [][2]interface{}{
		{"Role", session.Role},
		{"Experience Level", session.ExperienceLevel},
		{"Target Company", session.TargetCompany},
		{"Started", session.CreatedAt.Format(exportTimeLayout)},
		{"Status", status},
		{"Answered", fmt.Sprintf("%d / %d", session.AnsweredCount(), len(session.Questions))},
		{"Performance", performance},
	}
	for i, row := range rows {
		label := fmt.Sprintf("A%d", i+1)
		if err := f.SetCellValue(sheet, label, row[0]); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, label, label, labelStyle); err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, fmt.Sprintf("B%d", i+1), row[1]); err != nil {
			return err
		}
	}
	return nil
}

func writeAnswersSheet(f *excelize.File, session models.InterviewSession) error {
	sheet := exportAnswersSheet
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return err
	}
	wrapStyle, err := f.NewStyle(&excelize.Style{Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"}})
	if err != nil {
		return err
	}

	headers := []interface{}{"#", "Question", "Answer", "Score", "Score Source", "Feedback", "Answered At"}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", "G1", headerStyle); err != nil {
		return err
	}
	for col, width := range map[string]float64{"B": 40, "C": 60, "F": 80, "G": 20} {
		if err := f.SetColWidth(sheet, col, col, width); err != nil {
			return err
		}
	}

	for i, entry := range session.Entries {
		row := []interface{}{
			entry.QuestionIndex + 1,
			entry.Question,
			entry.Answer,
			entry.Score,
			entry.ScoreSource,
			entry.Feedback,
			entry.AnsweredAt.Format(exportTimeLayout),
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, fmt.Sprintf("B%d", i+2), fmt.Sprintf("F%d", i+2), wrapStyle); err != nil {
			return err
		}
	}
	return nil
}
