// Copyright (c) 2025 Fanline
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package httperrors provides user-friendly error handling for HTTP requests.
package httperrors

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"syscall"

	"github.com/pterm/pterm"

	"fanline/cli/internal/apierr"
	"fanline/cli/internal/logging"
)

// FormatNetworkError converts technical HTTP/network errors into user-friendly
// messages. It detects common error types (timeout, DNS, connection refused,
// TLS, server errors) and displays helpful troubleshooting information.
func FormatNetworkError(err error, context string) error {
	if err == nil {
		return nil
	}

	displayErrorMessage(err, context)

	return fmt.Errorf("network error: %w", err)
}

// displayErrorMessage shows a formatted error message based on error type.
func displayErrorMessage(err error, context string) {
	if showAPIError(err, context) {
		return
	}

	if isTimeoutError(err) {
		showTimeoutError(context)
		return
	}

	if isDNSError(err) {
		showDNSError(context)
		return
	}

	if isConnectionRefusedError(err) {
		showConnectionRefusedError(context)
		return
	}

	if isTLSError(err) {
		showTLSError(context)
		return
	}

	showGenericError(context, err.Error())
}

// showAPIError handles errors carrying an API error kind. Returns false when
// the error has no kind, so network-level classification runs instead.
func showAPIError(err error, context string) bool {
	switch apierr.KindOf(err) {
	case apierr.StatusCode:
		var sc *apierr.StatusCodeError
		if errors.As(err, &sc) {
			showStatusCodeError(context, sc)
		} else {
			showGenericError(context, err.Error())
		}
		return true
	case apierr.RemoteError:
		pterm.Printf("⚠️  Server rejected the command while %s\n", context)
		pterm.Println()
		pterm.Printf("  %s\n", err.Error())
		pterm.Println()
		return true
	case apierr.EndpointResolution:
		pterm.Printf("🌐 Cannot resolve the API endpoint while %s\n", context)
		pterm.Println()
		pterm.Println("Endpoint discovery failed. Please check:")
		pterm.Println("  • The configured discovery URL is reachable")
		pterm.Println("  • Run 'fanline connect' to reconfigure the endpoint")
		pterm.Println()
		return true
	case apierr.MalformedResponse:
		pterm.Printf("⚠️  Unexpected response from the server while %s\n", context)
		pterm.Println()
		pterm.Println("The endpoint answered, but not with a valid API response.")
		pterm.Println("Check that the configured address points at the Fanline API,")
		pterm.Println("not at a proxy or a web page.")
		pterm.Println()
		return true
	}
	return false
}

// showStatusCodeError maps well-known status codes to actionable messages.
func showStatusCodeError(context string, sc *apierr.StatusCodeError) {
	switch sc.Code {
	case 401, 403:
		pterm.Printf("🔑 Authorization failed while %s\n", context)
		pterm.Println()
		pterm.Println("The server rejected your API key. Please check:")
		pterm.Println("  • The key is correct and has not been rotated")
		pterm.Println("  • Run 'fanline login' to store a new key")
		pterm.Println()
	case 404:
		pterm.Printf("❓ API endpoint not found while %s\n", context)
		pterm.Println()
		pterm.Println("The server answered 404. The configured address may be")
		pterm.Println("missing the API path. Run 'fanline connect' to fix it.")
		pterm.Println()
	case 500, 502, 503, 504:
		pterm.Printf("⚠️  Server error while %s\n", context)
		pterm.Println()
		pterm.Println("The Fanline server encountered an internal error.")
		pterm.Println("This is not a problem with your setup.")
		pterm.Println("  • Please try again in a few minutes")
		pterm.Println()
	default:
		pterm.Printf("❌ Request rejected with status %d while %s\n", sc.Code, context)
		if sc.Body != "" {
			body := logging.Mask(sc.Body)
			if len(body) > 200 {
				body = body[:200] + "..."
			}
			pterm.Printf("  %s\n", body)
		}
		pterm.Println()
	}
}

// isTimeoutError checks if the error is a timeout error.
func isTimeoutError(err error) bool {
	if err == nil {
		return false
	}

	errStr := strings.ToLower(err.Error())
	if strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "deadline exceeded") {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	return false
}

// isDNSError checks if the error is a DNS resolution error.
func isDNSError(err error) bool {
	if err == nil {
		return false
	}

	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr)
}

// isConnectionRefusedError checks if the error is a connection refused error.
func isConnectionRefusedError(err error) bool {
	if err == nil {
		return false
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return errors.Is(opErr.Err, syscall.ECONNREFUSED)
	}

	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "connection refused")
}

// isTLSError checks if the error is a TLS error.
func isTLSError(err error) bool {
	if err == nil {
		return false
	}

	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "tls") ||
		strings.Contains(errStr, "ssl") ||
		strings.Contains(errStr, "certificate") ||
		strings.Contains(errStr, "handshake")
}

// showTimeoutError displays a user-friendly timeout error message.
func showTimeoutError(context string) {
	pterm.Printf("⏱️  Connection timeout while %s\n", context)
	pterm.Println()
	pterm.Println("The server took too long to respond. This could mean:")
	pterm.Println("  • Slow internet connection")
	pterm.Println("  • Server is under heavy load")
	pterm.Println("  • Network firewall is blocking the connection")
	pterm.Println()
	pterm.Println("Please try again in a few moments.")
	pterm.Println()
}

// showDNSError displays a user-friendly DNS error message.
func showDNSError(context string) {
	pterm.Printf("🌐 Cannot resolve server address while %s\n", context)
	pterm.Println()
	pterm.Println("Unable to look up the server host. Please check:")
	pterm.Println("  • Your internet connection is working")
	pterm.Println("  • The configured endpoint hostname is correct")
	pterm.Println("  • No DNS-level blocking (corporate firewall, VPN)")
	pterm.Println()
}

// showConnectionRefusedError displays a connection refused error message.
func showConnectionRefusedError(context string) {
	pterm.Printf("🚫 Connection refused while %s\n", context)
	pterm.Println()
	pterm.Println("The server is not accepting connections. This could mean:")
	pterm.Println("  • The server is not running")
	pterm.Println("  • Wrong server address or port")
	pterm.Println("  • Firewall is blocking the connection")
	pterm.Println()
	pterm.Println("Check the endpoint with 'fanline connect'.")
	pterm.Println()
}

// showTLSError displays a user-friendly TLS error message.
func showTLSError(context string) {
	pterm.Printf("🔒 Secure connection failed while %s\n", context)
	pterm.Println()
	pterm.Println("Cannot establish a secure HTTPS connection. This could mean:")
	pterm.Println("  • TLS certificate issue on the server")
	pterm.Println("  • Network proxy interfering with HTTPS")
	pterm.Println("  • System clock is incorrect")
	pterm.Println()
}

// showGenericError displays a generic error message for unrecognized errors.
func showGenericError(context string, errDetails string) {
	pterm.Printf("❌ Cannot reach the Fanline server while %s\n", context)
	pterm.Println()
	pterm.Println("Please check:")
	pterm.Println("  • Your internet connection")
	pterm.Println("  • Whether the server is accessible from your network")
	pterm.Println()

	if errDetails != "" {
		shortErr := logging.Mask(errDetails)
		if len(shortErr) > 100 {
			shortErr = shortErr[:100] + "..."
		}
		pterm.Debug.Printf("Technical details: %s\n", shortErr)
		pterm.Println()
	}
}

// ExtractHostFromURL extracts the hostname from a URL for error messages.
func ExtractHostFromURL(urlStr string) string {
	u, err := url.Parse(urlStr)
	if err != nil || u.Host == "" {
		return "server"
	}
	return u.Host
}
