package dynamo

// Config holds DynamoDB connection settings
type Config struct {
	// Endpoint overrides the service URL (e.g., a local DynamoDB). Empty uses AWS.
	Endpoint string
	Region   string
	Table    string

	// Static credentials. When AccessKeyID is empty a custom Endpoint gets
	// placeholder keys and AWS gets the default credential chain.
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string

	// Provisioned throughput used when the table has to be created
	ReadCapacity  int64
	WriteCapacity int64
}

// DefaultConfig returns settings for a local DynamoDB. Callers building from
// environment configuration overwrite Endpoint, so an empty value reaches AWS.
func DefaultConfig() Config {
	return Config{
		Endpoint:      "http://localhost:8000",
		Region:        "eu-west-3",
		Table:         "players",
		ReadCapacity:  10,
		WriteCapacity: 10,
	}
}
