package stats

/*
All the metrics collected by the client. As new metrics are added please follow this pattern.
*/

const (
	/************************* Token metrics **************************/
	/*
		scope for the session token manager
	*/
	TokenScope = "token"

	/*
		number of invocations that found a usable cached credential
	*/
	TokenCacheHitCounter = "cacheHitCounter"

	/*
		number of invocations whose cache was missing, unreadable or expired
	*/
	TokenCacheMissCounter = "cacheMissCounter"

	/*
		number of credentials issued by the server
	*/
	TokenIssueCounter = "issueCounter"

	/*
		number of failed issuance attempts
	*/
	TokenIssueErrCounter = "issueErrCounter"

	/************************* Request metrics **************************/
	/*
		scope for dispatched API requests
	*/
	RequestScope = "request"

	/*
		number of API requests sent
	*/
	RequestSentCounter = "sentCounter"

	/*
		number of API requests that failed in transport or returned status >= 400
	*/
	RequestErrCounter = "errCounter"

	/*
		time from sending an API request to having read its response body
	*/
	RequestLatency_ms = "latency_ms"
)
