package global

import (
	"netops_reports/config"
	"netops_reports/internal/registry"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoDB_CollectionName holds the MongoDB collection names used by the app.
type MongoDB_CollectionName struct {
	Reports string // collection for persisted report entities
}

// Global variables shared across the process.
var Validate *validator.Validate              // request payload validator
var MongoDB_Session *mongo.Client             // MongoDB client session
var ServerConfig *config.Configuration        // parsed server configuration
var MongoDB_ColNames = MongoDB_CollectionName{} // collection names

// Registries.
var RegistryCollections = registry.NewRegistry[*mongo.Collection]() // registered collections
var RegistryDatabase = registry.NewRegistry[*mongo.Database]()      // registered databases
