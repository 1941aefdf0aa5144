package user

type User struct {
	Id          int
	Uid         string
	Username    string
	DisplayName string
	Email       string
	Settings    Settings
}

type Settings struct {
	// Timezone is an IANA zone name; dashboard windows are computed in it.
	Timezone string
}
