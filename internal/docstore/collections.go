package docstore

// Collection names, matching the original persisted layout: template
// collections under dataset_*, per-save mirrors under save_*.
const (
	ColDatasets      = "datasets"
	ColPlayerSaves   = "player_saves"
	ColCompanies     = "dataset_companies"
	ColWrestlers     = "dataset_wrestlers"
	ColStaff         = "dataset_staff"
	ColTitles        = "dataset_titles"
	ColTVDeals       = "dataset_tv_deals"
	ColTVShows       = "dataset_tv_shows"
	ColEvents        = "dataset_events"
	ColTeams         = "dataset_teams"
	ColStables       = "dataset_stables"
	ColSponsors      = "dataset_sponsors"
	ColRelationships = "dataset_relationships"

	ColSaveCompanies     = "save_companies"
	ColSaveWrestlers     = "save_wrestlers"
	ColSaveStaff         = "save_staff"
	ColSaveTitles        = "save_titles"
	ColSaveTVDeals       = "save_tv_deals"
	ColSaveTVShows       = "save_tv_shows"
	ColSaveShows         = "save_shows"
	ColSaveTeams         = "save_teams"
	ColSaveStables       = "save_stables"
	ColSaveSponsors      = "save_sponsors"
	ColSaveRelationships = "save_relationships"
	ColSaveStorylines    = "save_storylines"
	ColSaveMessages      = "save_messages"
	ColSaveCareerEvents  = "save_career_events"
)

// SaveCollections is every collection that makes up one save's world.
var SaveCollections = []string{
	ColSaveCompanies,
	ColSaveWrestlers,
	ColSaveStaff,
	ColSaveTitles,
	ColSaveTVDeals,
	ColSaveTVShows,
	ColSaveShows,
	ColSaveTeams,
	ColSaveStables,
	ColSaveSponsors,
	ColSaveRelationships,
	ColSaveStorylines,
	ColSaveMessages,
	ColSaveCareerEvents,
}
