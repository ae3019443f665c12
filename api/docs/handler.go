// Package docs serves the public landing and privacy pages.
package docs

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const landingHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>Card Value Backend</title>
  <style>
    body { font-family: sans-serif; max-width: 40rem; margin: 3rem auto; padding: 0 1rem; color: #222; }
    code { background: #f4f4f4; padding: 0.1rem 0.3rem; border-radius: 3px; }
  </style>
</head>
<body>
  <h1>Card Value Backend</h1>
  <p>Price-comparison service for trading cards. It queries active eBay
  listings per grading bucket and returns summary statistics with a sample
  of comparable sales.</p>
  <h2>Endpoints</h2>
  <ul>
    <li><code>POST /comps/ebay</code> &ndash; comps for one grading bucket</li>
    <li><code>POST /comps/ebay/multi</code> &ndash; comps across several buckets</li>
    <li><code>GET /healthz</code> &ndash; liveness probe</li>
    <li><code>GET /metrics</code> &ndash; Prometheus metrics</li>
  </ul>
  <p>See the <a href="/privacy">privacy policy</a>.</p>
</body>
</html>`

const privacyHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>Privacy Policy - Card Value Backend</title>
  <style>
    body { font-family: sans-serif; max-width: 40rem; margin: 3rem auto; padding: 0 1rem; color: #222; }
  </style>
</head>
<body>
  <h1>Privacy Policy</h1>
  <p>This service stores no personal data. Card lookup requests are processed
  in memory and discarded once the response is sent. No search history,
  identity fields, or pricing results are persisted.</p>
  <p>Requests are logged with a random request ID, method, path, status, and
  duration for operational purposes only. Logs contain no request bodies.</p>
  <p>Marketplace data shown in responses comes from the eBay Browse API and
  is subject to eBay's own terms of use.</p>
</body>
</html>`

// RegisterRoutes adds the landing and privacy pages to the Echo instance.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/", serveLanding)
	e.GET("/privacy", servePrivacy)
}

func serveLanding(c echo.Context) error {
	return c.HTML(http.StatusOK, landingHTML)
}

func servePrivacy(c echo.Context) error {
	return c.HTML(http.StatusOK, privacyHTML)
}
