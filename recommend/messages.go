package recommend

// Advisory texts, one per rule. Kept as constants so tests can assert on
// exact membership and ordering.
const (
	msgPTLowAttitude = "It seems you have a negative attitude towards public transport. " +
		"Consider exploring its potential benefits, such as reducing stress from driving, " +
		"saving on fuel/parking costs, or the opportunity to relax/work during commute. " +
		"Perhaps try a short trip during off-peak hours to experience it."

	msgPTLowSN = "Your social circle might not strongly influence you to use public transport. " +
		"Talk to colleagues or friends who use PT; they might share positive experiences or tips " +
		"that could change your perception."

	msgPTLowPBC = "You seem to perceive challenges with using public transport. " +
		"Try researching routes and schedules using apps (e.g., Google Maps, local transit apps). " +
		"Understanding the system better can greatly improve your perceived ease of use. " +
		"Perhaps a trial run on a non-work day could help build confidence."

	msgPTEncouragement = "You have a strong intention to use public transport, which is great! " +
		"Keep leveraging its benefits for a sustainable and potentially less stressful commute."

	msgCarCongestion = "You seem to strongly prefer using a car due to high perceived control and positive attitude. " +
		"If congestion is a concern, consider carpooling or adjusting your commute time."

	msgCarEnvironment = "While you might prefer driving, consider the environmental or community impact. " +
		"Exploring alternatives, even occasionally, could align with broader social trends."

	msgWalkCycleAccess = "You intend to walk or cycle, but might face challenges. " +
		"Check for safe bike lanes or pedestrian paths. " +
		"Even partial walking/cycling (e.g., to the nearest PT stop) can be beneficial."

	msgWalkCycleEncouragement = "Great! You have a high intention and perceived control for walking or cycling. " +
		"This is an excellent option for health and environment. Keep it up!"

	msgFallback = "Based on your profile, you seem to have a balanced view on commuting. " +
		"Consider your daily needs and external factors like weather or traffic when choosing your mode."
)

// Crowding advisories carry the simulated average, formatted as a percent.
const (
	fmtCrowdingAlert = "**Crowding Alert:** Our simulation indicates public transport can be quite crowded (average crowding: %.0f%%). " +
		"If you're sensitive to crowding, consider adjusting your commute time to off-peak hours, " +
		"or exploring alternative routes/modes on particularly busy days."

	fmtCrowdingModerate = "Our simulation shows moderate public transport crowding (average crowding: %.0f%%). " +
		"While not extremely high, being aware of peak times can help you plan a more comfortable journey."

	fmtCrowdingLow = "Our simulation suggests public transport is generally not overly crowded (average crowding: %.0f%%). " +
		"This might be a good time to try it if crowding was a concern."

	fmtSwitchesObserved = "Our simulation also observed %d instances of commuters switching away from public transport due to crowding. " +
		"This highlights the importance of checking real-time conditions if PT is your preferred mode."
)
