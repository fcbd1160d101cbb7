// internal/app/features/reports/generate.go
package reports

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/dalemusser/tankerhub/internal/app/system/formutil"
	"github.com/dalemusser/tankerhub/internal/app/system/inputval"
	"github.com/dalemusser/tankerhub/internal/app/system/normalize"
	"github.com/dalemusser/tankerhub/internal/app/system/reportgen"
	"github.com/dalemusser/tankerhub/internal/app/system/timeouts"
	"github.com/dalemusser/tankerhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ServeForm handles GET /reports.
func (h *Handler) ServeForm(w http.ResponseWriter, r *http.Request) {
	data := formData{Format: reportgen.FormatPDF}
	h.renderForm(w, r, data, nil)
}

// HandleGenerate handles POST /reports. It fetches only the sources the
// chosen sections need, builds the report and streams it as a download.
func (h *Handler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form submission.", "/reports")
		return
	}

	chosen := r.Form["sections"]
	format := normalize.Status(r.FormValue("format"))
	data := formData{From: r.FormValue("from"), To: r.FormValue("to"), Format: format}

	if len(chosen) == 0 {
		data.SetError("Choose at least one section.")
		h.renderForm(w, r, data, chosen)
		return
	}
	if msg := inputval.Validate(reportInput{Sections: chosen, Format: format}).First(); msg != "" {
		data.SetError(msg)
		h.renderForm(w, r, data, chosen)
		return
	}
	from := formutil.DateTime(r, "from", time.Local)
	to := formutil.DateTime(r, "to", time.Local)
	if !from.IsZero() && !to.IsZero() && to.Before(from) {
		data.SetError("The end date must not be before the start date.")
		h.renderForm(w, r, data, chosen)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Report(), h.Log, "report generate")
	defer cancel()

	sections := ordered(chosen)
	b := reportgen.Builder{
		Fmt:       reportgen.NewFormatter(h.Opts.Currency),
		From:      from,
		To:        to,
		Threshold: h.Opts.Threshold,
	}
	built, err := h.build(ctx, b, sections)
	if err != nil {
		h.ErrLog.Upstream(w, r, "report data failed", err, "The report data could not be loaded.", "/reports")
		return
	}
	rep := b.Report(reportTitle, h.Opts.Company, time.Now(), built...)

	var buf bytes.Buffer
	if err := reportgen.Render(&buf, rep, format); err != nil {
		h.ErrLog.LogServerError(w, r, "report render failed", err, "The report could not be generated.", "/reports")
		return
	}
	h.Audit.ReportGenerated(ctx, r, format, sections)
	h.Log.Info("report generated",
		zap.String("format", format),
		zap.Strings("sections", sections),
		zap.Int("bytes", buf.Len()))

	w.Header().Set("Content-Type", reportgen.ContentType(format))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", reportgen.Filename(rep, format)))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("Cache-Control", "no-store")
	_, _ = buf.WriteTo(w)
}

// build fetches the entity lists for sections concurrently and returns
// the sections in the given order. Any failed fetch fails the report.
func (h *Handler) build(ctx context.Context, b reportgen.Builder, sections []string) ([]reportgen.Section, error) {
	out := make([]reportgen.Section, len(sections))
	g, gctx := errgroup.WithContext(ctx)

	for i, key := range sections {
		g.Go(func() error {
			var err error
			switch key {
			case reportgen.SectionBookings:
				var all []models.Booking
				if all, err = h.Bookings.List(gctx); err == nil {
					out[i] = b.Bookings(all)
				}
			case reportgen.SectionDrivers:
				var all []models.Driver
				if all, err = h.Drivers.List(gctx); err == nil {
					out[i] = b.Drivers(all)
				}
			case reportgen.SectionTankers:
				var all []models.Tanker
				if all, err = h.Tankers.List(gctx); err == nil {
					out[i] = b.Tankers(all)
				}
			case reportgen.SectionCustomers:
				var all []models.Customer
				if all, err = h.Customers.List(gctx); err == nil {
					out[i] = b.Customers(all)
				}
			case reportgen.SectionSensors:
				var all []models.Sensor
				if all, err = h.Sensors.List(gctx); err == nil {
					out[i] = b.Sensors(all)
				}
			case reportgen.SectionComplaints:
				var all []models.Complaint
				if all, err = h.Complaints.List(gctx); err == nil {
					out[i] = b.Complaints(all)
				}
			default:
				err = fmt.Errorf("unknown report section %q", key)
			}
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (h *Handler) renderForm(w http.ResponseWriter, r *http.Request, data formData, chosen []string) {
	formutil.SetBase(&data.Base, w, r, "Reports", "/dashboard")
	data.Sections = options(chosen)
	data.Formats = reportgen.Formats
	templates.Render(w, r, "reports_form", data)
}
