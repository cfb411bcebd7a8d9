package server

import (
	"errors"
	"html/template"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"reflect"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/spacesedan/sentiview/internal/analysis"
	"github.com/spacesedan/sentiview/internal/models"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 200
)

func (s *Server) index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"Column": s.analyzer.TextColumn(),
	})
}

func (s *Server) analyze(c *gin.Context) {
	up, err := s.readUpload(c)
	if err != nil {
		s.renderError(c, err)
		return
	}

	rep, err := s.analyzer.Analyze(c.Request.Context(), up)
	if err != nil {
		s.renderError(c, err)
		return
	}

	c.HTML(http.StatusOK, "result.html", resultView(rep))
}

// readUpload pulls the spreadsheet out of the multipart form. The filename
// is checked before the file body is read.
func (s *Server) readUpload(c *gin.Context) (analysis.Upload, error) {
	// multipart overhead on top of the file itself
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.maxUploadBytes+1<<20)

	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			return analysis.Upload{}, analysis.ErrFileTooLarge
		case emptyFilePart(c.Request.MultipartForm):
			return analysis.Upload{}, analysis.ErrNoFileSelected
		default:
			return analysis.Upload{}, analysis.ErrNoFile
		}
	}
	if err := analysis.ValidateFilename(fh.Filename); err != nil {
		return analysis.Upload{}, err
	}
	if fh.Size > s.maxUploadBytes {
		return analysis.Upload{}, analysis.ErrFileTooLarge
	}

	f, err := fh.Open()
	if err != nil {
		return analysis.Upload{}, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return analysis.Upload{}, err
	}

	_, preprocessing := c.GetPostForm("preprocessing")
	return analysis.Upload{
		Filename:      fh.Filename,
		Data:          data,
		Preprocessing: preprocessing,
	}, nil
}

// emptyFilePart reports whether the form carried a file field with no
// filename, which browsers send when nothing was chosen.
func emptyFilePart(form *multipart.Form) bool {
	if form == nil {
		return false
	}
	_, ok := form.Value["file"]
	return ok
}

func (s *Server) renderError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "An error occurred: " + err.Error()
	if analysis.IsInputError(err) {
		status = http.StatusBadRequest
		message = err.Error()
	} else {
		slog.Error("[Server] Analysis failed", slog.String("error", err.Error()))
	}
	c.HTML(status, "error.html", gin.H{"Message": message})
}

func resultView(rep *models.Report) gin.H {
	return gin.H{
		"Summary":      rep.Summary,
		"Positive":     rep.Summary.Counts[models.LabelPositive],
		"Negative":     rep.Summary.Counts[models.LabelNegative],
		"Segmentation": dataURI(rep.SegmentationPNG),
		"PositiveWC":   dataURI(rep.PositiveWordCloudPNG),
		"NegativeWC":   dataURI(rep.NegativeWordCloudPNG),
	}
}

func dataURI(b64 string) template.URL {
	return template.URL("data:image/png;base64," + b64)
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":     "ok",
		"classifier": s.analyzer.ClassifierName(),
		"cache":      s.analyzer.CacheState(),
	})
}

func (s *Server) history(c *gin.Context) {
	limit := defaultHistoryLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			badRequest(c, "limit must be a positive integer")
			return
		}
		limit = min(n, maxHistoryLimit)
	}

	summaries, err := s.analyzer.Recent(c.Request.Context(), limit)
	if err != nil {
		internalError(c, err)
		return
	}
	ok(c, summaries)
}

// ok sends a 200 response. Slices are wrapped in {data: [...]}.
func ok(c *gin.Context, data any) {
	if data != nil && reflect.ValueOf(data).Kind() == reflect.Slice {
		c.JSON(http.StatusOK, gin.H{"data": data})
		return
	}
	c.JSON(http.StatusOK, data)
}

func badRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"ok": 0, "code": http.StatusBadRequest, "message": message})
}

func internalError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"ok": 0, "code": http.StatusInternalServerError, "message": err.Error()})
}
