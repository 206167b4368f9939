package hermes

const (
	StreamName     = "VOUCH_EVENTS"
	StreamSubjects = "vouch.>"
	StreamMaxAge   = "720h" // 30 days
)

func SubjectBriefCreated(briefID string) string       { return "vouch.brief." + briefID + ".created" }
func SubjectInfluencerAdded(influencerID string) string { return "vouch.influencer." + influencerID + ".added" }
func SubjectReportComputed(briefID string) string     { return "vouch.report." + briefID + ".computed" }
