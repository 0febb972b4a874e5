package discord

import (
	"bytes"
	"crypto/ed25519"
	"encoding/hex"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"resuralph/internal/shared/telemetry"
)

// VerifySignature authenticates interaction requests using Discord's
// ed25519 scheme: the signature covers timestamp+body. Requests that fail
// verification are rejected with 401 before any routing happens.
func VerifySignature(publicKeyHex string) gin.HandlerFunc {
	key, err := hex.DecodeString(publicKeyHex)
	valid := err == nil && len(key) == ed25519.PublicKeySize

	return func(c *gin.Context) {
		if !valid {
			telemetry.Error("discord.verify.misconfigured", map[string]any{
				"path": c.Request.URL.Path,
			})
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "service not configured"})
			return
		}

		sigHex := c.GetHeader("X-Signature-Ed25519")
		timestamp := c.GetHeader("X-Signature-Timestamp")
		if sigHex == "" || timestamp == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing signature"})
			return
		}

		sig, err := hex.DecodeString(sigHex)
		if err != nil || len(sig) != ed25519.SignatureSize {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid signature"})
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "unreadable body"})
			return
		}
		// Body is consumed for verification; restore it for the handler.
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		msg := append([]byte(timestamp), body...)
		if !ed25519.Verify(ed25519.PublicKey(key), msg, sig) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid request signature"})
			return
		}

		c.Next()
	}
}
