package middleware

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
)

// SearchRedirect sends any GET page carrying a search term to the listing,
// where the term is applied as the name filter.
func SearchRedirect(listingPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		q := c.Query("q")
		if q == "" {
			c.Next()
			return
		}

		target := listingPath + "?q=" + url.QueryEscape(q)
		GetLoggerFromContext(c).Debug("Redirecting search to listing", map[string]interface{}{
			"from": c.Request.URL.Path,
			"q":    q,
		})
		c.Redirect(http.StatusFound, target)
		c.Abort()
	}
}
