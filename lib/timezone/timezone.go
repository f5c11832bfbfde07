package timezone

import "time"

var Location *time.Location

func init() {
	var err error
	Location, err = time.LoadLocation("America/Indianapolis")
	if err != nil {
		panic(err)
	}
}

// force the timezone to the series' home timezone because the
// IndyStats endpoints serve bare M/D/YYYY dates and parsing them
// in the server's local zone can shift <time.Time>.Year()
func Now() time.Time {
	return time.Now().In(Location)
}
