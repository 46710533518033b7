package constants

// DefaultTMDBBaseURL is the standard base URL for the TMDB v3 REST API.
const DefaultTMDBBaseURL = "https://api.themoviedb.org/3"

// DefaultYouTubeBaseURL is the host whose results page is scraped for search fallbacks.
const DefaultYouTubeBaseURL = "https://www.youtube.com"

// YouTubeWatchURL prefixes a video id to build an external link.
const YouTubeWatchURL = "https://www.youtube.com/watch?v="

// DefaultUserAgent identifies the service towards the metadata API.
const DefaultUserAgent = "Streailer/1.1"

// BrowserUserAgent is sent to the search page, which serves a stripped page to unknown agents.
const BrowserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

// DefaultLanguage is used when a request carries no language preference.
const DefaultLanguage = "it-IT"

// FallbackLanguage is the language every lookup table falls back to.
const FallbackLanguage = "en-US"
