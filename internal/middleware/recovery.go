package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Recovery converts panics into a JSON error envelope. The panic value's
// message is surfaced when it is an error or a string; anything else falls
// back to a generic message.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("panic recovered: %v", r)

				msg := "Internal Server Error"
				switch v := r.(type) {
				case error:
					msg = v.Error()
				case string:
					msg = v
				}

				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": msg})
			}
		}()

		c.Next()
	}
}
