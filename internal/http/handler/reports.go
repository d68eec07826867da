package handler

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"realtyapi/internal/report"
	"realtyapi/internal/service"
)

// ContactsReport streams the inquiries PDF. With ?download=1 the browser is asked to save
// it instead of displaying it.
//
// @Summary  Contacts report
// @Tags     reports
// @Produce  application/pdf
// @Param    download query string false "Truthy value forces an attachment"
// @Success  200 {file} file
// @Failure  500 {object} errorPayload
// @Router   /reports/contacts [get]
func ContactsReport(svc service.ReportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		pdf, err := svc.Generate(c.UserContext())
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "REPORT_FAILED", "report could not be generated")
		}

		disposition := "inline"
		if truthy(c.Query("download")) {
			disposition = "attachment"
		}
		c.Set(fiber.HeaderContentType, report.ContentType)
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`%s; filename="%s"`, disposition, report.Filename))
		c.Set(fiber.HeaderCacheControl, "no-store")
		return c.Status(fiber.StatusOK).Send(pdf)
	}
}

func truthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
