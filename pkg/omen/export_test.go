package omen

// SanitizeCacheKey exposes sanitizeKey to the external test package.
var SanitizeCacheKey = sanitizeKey
