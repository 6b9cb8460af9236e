package constants

// Centralized constants for headers, routes and API strings.
const (
	// HTTP headers and content types
	HeaderContentType = "Content-Type"
	HeaderRequestID   = "X-Request-ID"

	ContentTypeJSON = "application/json"

	CacheControlHeader  = "Cache-Control"
	CacheControlNoCache = "no-cache, no-store, must-revalidate"
)

// Routes used by the backend router
const (
	RouteAPIPrefix      = "/api"
	RouteCharacters     = "/characters/:actorID"
	RouteCharacterSkill = "/characters/:actorID/skills"
	RouteInventory      = "/characters/:actorID/inventory"
	RouteMonsters       = "/monsters"
	RouteBattles        = "/battles"
	RouteBattleByID     = "/battles/:battleID"
	RouteBattleAction   = "/battles/:battleID/action"
	RouteHealth         = "/health"
	RouteVersion        = "/version"
)

// Common JSON response keys
const (
	JSONKeyError   = "error"
	JSONKeyMessage = "message"
	JSONKeyStatus  = "status"
)

// Common error messages used across API handlers
const (
	ErrInvalidRequest  = "Invalid request"
	ErrInvalidActorID  = "Invalid actor ID"
	ErrInvalidBattleID = "Invalid battle ID"

	ErrFailedFetchCharacter = "Failed to fetch character"
	ErrFailedSaveCharacter  = "Failed to save character"
	ErrFailedFetchInventory = "Failed to fetch inventory"
	ErrFailedStartBattle    = "Failed to start battle"
	ErrFailedPerformAction  = "Failed to perform action"
)

// Logging field names
const (
	LogFieldBattleID  = "battle_id"
	LogFieldActorID   = "actor_id"
	LogFieldMonsterID = "monster_id"
	LogFieldAction    = "action"
	LogFieldTurn      = "turn"
	LogFieldAddr      = "addr"
	LogFieldRequestID = "request_id"
)
