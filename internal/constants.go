/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

const (
	UserAgent      = "swisscut/0.3.0 (+https://github.com/mikeb26/swisscut)"
	WebCacheBucket = "bopmatic-swisscut-prod-webcache"
	CobraiBaseURL  = "https://cobr.ai"
)
