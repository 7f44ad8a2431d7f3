package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// UserAgent identifies the HTTP client.
var UserAgent = "KeepInTouch/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "KeepInTouch"
	AppID             = "com.github.tartampluch.go-keepintouch"
	KeyringService    = "com.github.tartampluch.go-keepintouch"
	LocalhostBindAddr = "127.0.0.1"
	DBFileName        = "keepintouch.db"
	DBDirName         = ".keepintouch"
	EnvDBPath         = "KEEPINTOUCH_DB"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	// Used for files holding personal data, like the exported calendar.
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	// Used for creating the database directory.
	DirPermUserRWX fs.FileMode = 0700
)

// -----------------------------------------------------------------------------
// Engine Policy
// -----------------------------------------------------------------------------

// Prioritization constants. The due-soon window and the check-in priority cap
// are tunable policy, not load-bearing invariants; the cap of 30 keeps check-in
// items below the lowest upcoming-birthday priority (43).
const (
	DefaultContactFrequencyDays = 14
	DueSoonWindowDays           = 3

	BirthdayTodayPriority = 100.0
	UpcomingBasePriority  = 50.0
	UpcomingWindowDays    = 7
	CheckInPriorityCap    = 30.0
	CheckInPriorityScale  = 10.0

	BacklogLimit = 10
	StarredBoost = 1.5

	// DefaultLeapYear is the sentinel year stored when only month/day are known.
	// A leap year so that --02-29 stays representable.
	DefaultLeapYear = 2000
)

// -----------------------------------------------------------------------------
// Settings Keys (persisted in the settings table)
// -----------------------------------------------------------------------------

const (
	SettingDefaultFrequency = "default_contact_frequency"
	SettingCheckInReminders = "check_in_reminders_enabled"
	SettingLanguage         = "language"

	SettingValueTrue  = "true"
	SettingValueFalse = "false"
)

// SupportedLanguages defines the list of available output languages (ISO 639-1).
var SupportedLanguages = []string{"en", "fr"}

const DefaultLanguage = "en"

// -----------------------------------------------------------------------------
// Data Formats
// -----------------------------------------------------------------------------

const (
	// Date layouts accepted for birthdays (CLI flags and vCard BDAY fields)
	DateFormatFullDash  = "2006-01-02"
	DateFormatFullBasic = "20060102"
	DateFormatRFC3339   = time.RFC3339
	DateFormatFullT     = "2006-01-02T15:04:05Z"
	DateFormatNoYearD   = "--01-02"
	DateFormatNoYearB   = "--0102"

	// Timestamp layout used in the SQLite store
	DateFormatStore = time.RFC3339

	// File Extensions
	ExtVCF   = ".vcf"
	ExtVCard = ".vcard"
	ExtICS   = ".ics"
)

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	// iCal Properties
	ICalVersion   = "2.0"
	ICalProdid    = "-//KeepInTouch//Engine//EN"
	ICalCalName   = "Birthdays"
	ICalMethod    = "PUBLISH"
	ICalScale     = "GREGORIAN"
	ICalComponent = "VALARM"
	ICalAction    = "DISPLAY"
	ICalDomain    = "keepintouch"

	PropUID         = "UID"
	PropSummary     = "SUMMARY"
	PropDTStart     = "DTSTART"
	PropDTStamp     = "DTSTAMP"
	PropRefresh     = "REFRESH-INTERVAL"
	PropAction      = "ACTION"
	PropDescription = "DESCRIPTION"
	PropTrigger     = "TRIGGER"
	PropVersion     = "VERSION"
	PropProdid      = "PRODID"
	PropXWRCalName  = "X-WR-CALNAME"
	PropCalScale    = "CALSCALE"
	PropMethod      = "METHOD"

	VCardBDAY = "BDAY"
	VCardFN   = "FN"
	VCardN    = "N"

	DefaultICalRefresh = 1 * time.Hour

	// FormatUID is "<friendID>-<year>@<domain>".
	FormatUID = "%s-%d@%s"

	// StubVCalendar is the minimal valid iCalendar object used when no events
	// are found, so clients never see an invalid feed.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	DefaultPort         = "18080"
	HTTPTimeout         = 30 * time.Second
	ShutdownTimeout     = 5 * time.Second
	ServerReadTimeout   = 10 * time.Second
	ServerWriteTimeout  = 30 * time.Second
	ServerIdleTimeout   = 60 * time.Second
	MaxHTTPResponseSize = 256 * 1024 * 1024 // 256MB
	SchemeHTTP          = "http"
	SchemeHTTPS         = "https"
	AddrSeparator       = ":"

	RouteCalendar = "/calendar.ics"
	RouteAPI      = "/api"
	RouteHealth   = "/health"
	RouteTimeline = "/timeline"
	RouteBacklog  = "/backlog"
	RouteFriends  = "/friends"

	MinPort = 1
	MaxPort = 65535
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType     = "Content-Type"
	HeaderCacheControl    = "Cache-Control"
	HeaderETag            = "ETag"
	HeaderLastModified    = "Last-Modified"
	HeaderAllow           = "Allow"
	HeaderXContentType    = "X-Content-Type-Options"
	HeaderUserAgent       = "User-Agent"
	HeaderIfNoneMatch     = "If-None-Match"
	HeaderIfModifiedSince = "If-Modified-Since"

	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeJSON            = "application/json"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"
	AllowedMethods      = "GET, HEAD"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrNameRequired    = "validation error: friend name is required"
	ErrFrequencyRange  = "validation error: contact frequency must be positive"
	ErrTierUnknown     = "validation error: unknown tier"
	ErrDateParse       = "unable to parse date"
	ErrFriendNotFound  = "friend not found"
	ErrSettingUnknown  = "unknown setting key"
	ErrOpenDB          = "failed to open database"
	ErrMigrate         = "database migration failed"
	ErrVCardParse      = "failed to parse vCard stream"
	ErrICalEncode      = "failed to encode iCalendar data"
	ErrLocalPathEmpty  = "configuration error: import path is empty"
	ErrWebURLEmpty     = "configuration error: web URL is empty"
	ErrFetcherMissing  = "internal error: network fetcher is not initialized"
	ErrInvalidURL      = "invalid URL structure"
	ErrProtocol        = "unsupported protocol scheme (http/https only)"
	ErrServerStartup   = "server startup failed"
	ErrServerShutdown  = "server shutdown failed"
	ErrPortRequired    = "server port is required"
	ErrPortRange       = "server port must be between 1 and 65535"
	ErrWriteResp       = "failed to write response body"
	ErrLocalesAccess   = "failed to access embedded locales"
	ErrLocaleLoad      = "failed to load locale file"
	ErrKeyringGet      = "failed to read password from keyring"
	ErrKeyringSet      = "failed to store password in keyring"
	ErrAppFailed       = "application failed unexpectedly"
	ErrLanguageUnknown = "unsupported language"
)

// -----------------------------------------------------------------------------
// Log Messages
// -----------------------------------------------------------------------------

const (
	MsgAppStarting    = "Starting application"
	MsgAppStop        = "Application stopped gracefully"
	MsgServerListen   = "HTTP server listening"
	MsgServerStop     = "Shutting down HTTP server..."
	MsgSkippedCard    = "Skipping malformed vCard"
	MsgSkippedDate    = "Skipping invalid date format"
	MsgSkippedFriend  = "Skipping malformed friend record"
	MsgImportStarted  = "Import started"
	MsgImportDone     = "Import finished"
	MsgDeriveDone     = "Derivation finished"
	MsgBdayToday      = "Birthday found today"
	MsgCalGenSuccess  = "Calendar generation successful"
	MsgLocaleSkip     = "Skipping non-locale file"
	MsgLocaleBadName  = "Skipping malformed locale filename"
	MsgLocaleLoaded   = "Locale loaded successfully"
	MsgTransMissing   = "Missing translation key"
	MsgInteractionLog = "Interaction logged"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyURL       = "url"
	LogKeyStatus    = "status_code"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyPort      = "port"
	LogKeyCount     = "count"
	LogKeyName      = "name"
	LogKeyFriendID  = "friend_id"
	LogKeyTier      = "tier"
	LogKeyDOB       = "date_of_birth"
	LogKeyDuration  = "duration_ms"
	LogKeyValue     = "value"
	LogKeyStats     = "stats"
	LogKeyTotal     = "total_cards"
	LogKeyImported  = "imported"
	LogKeySkipped   = "skipped"
	LogKeyTimeline  = "timeline_items"
	LogKeyBacklog   = "backlog_items"
	LogKeyUrgent    = "urgent_friends"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"
	LogKeyDBPath    = "db_path"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompEngine   = "engine"
	CompStore    = "store"
	CompServer   = "server"
	CompImporter = "importer"
	CompCalendar = "calendar"
	CompCLI      = "cli"
	CompI18n     = "i18n"
	CompMain     = "main"
)

// -----------------------------------------------------------------------------
// Fallbacks (used when no localizer is injected)
// -----------------------------------------------------------------------------

const (
	FallbackName             = "Unknown"
	FallbackSubtitleToday    = "Today"
	FallbackSubtitleTomorrow = "Tomorrow"
	FallbackSubtitleInDays   = "In %d days"
	FallbackSubtitleDaysAgo  = "%d days ago"
	FallbackSubtitleNever    = "Not yet contacted"
	FallbackEventSummary     = "Birthday: %s"
	FallbackEventSummaryAge  = "Birthday: %s (%d)"
)
