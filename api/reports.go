package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mm-relief/lostfound-bot/schema"
	"github.com/mm-relief/lostfound-bot/store"
)

// getReport looks a single report up by its public id.
func (s *Server) getReport(c *gin.Context) {
	report, err := s.store.GetReport(c.Param("reportID"))
	if err != nil {
		if err == store.ErrReportNotFound {
			abortWithEncoding(c, http.StatusNotFound, errorReportNotFound)
		} else {
			abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer)
		}
		return
	}

	c.JSON(http.StatusOK, report)
}

// searchReports runs the same free-text search the bot offers, optionally
// narrowed by report type.
func (s *Server) searchReports(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters)
		return
	}

	var typeFilter schema.ReportType
	if label := c.Query("type"); label != "" {
		t, ok := schema.ParseReportType(label)
		if !ok {
			abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters)
			return
		}
		typeFilter = t
	}

	reports, err := s.store.SearchReports(query, typeFilter)
	if err != nil {
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reports": reports})
}

func abortWithEncoding(c *gin.Context, code int, obj ErrorResponse) {
	c.AbortWithStatusJSON(code, obj)
}
