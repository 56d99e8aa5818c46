// Package reconcile links Dragonite areas to Patreon members and curated supporters and reports
// whether each subject has the scanner capacity their tier entitles them to.
//
// # Linking
//
// Area names are the only linking surface. Each area runs through an ordered chain of
// strategies and the first hit wins:
//
//  1. A leading numeric Patreon id of a known member. Filed under completed.
//  2. A Ko-Fi marker plus the Discord id of a known supporter. Filed under completed.
//  3. Any 17 to 20 digit Discord id. Grouped under that id.
//  4. A UUID token that the alias table maps to a member. Grouped under the member.
//
// Areas no strategy links go to noDiscordIdFound. Name similarity with a member or supporter is
// reported as a possible match but never changes the classification.
//
// # Groups
//
// Linked areas are grouped by Discord id, or by patreon:<member id> for members without one.
// A group's expected workers are compared with the subject's quota. Groups from rules 1 and 2
// are completed, the rest are matches, and groups with no subject are noPatreonMatch. Subjects
// with a positive quota and no group are listed in noDragoniteMatch.
//
// # HTTP
//
//	GET /reconcile?verify=true&archive=true
//	GET /reconcile/archives
//	GET /reconcile/archives/:name
package reconcile
