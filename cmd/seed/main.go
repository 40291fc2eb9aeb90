package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"pulseform/internal/engine"
	"pulseform/internal/model"
)

func main() {
	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}
	database := os.Getenv("MONGO_DATABASE")
	if database == "" {
		database = "pulseform"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(database)
	surveyColl := db.Collection("surveys")

	hostID := "host_seed0001"

	survey := model.Survey{
		ID:          primitive.NewObjectID().Hex(),
		HostID:      hostID,
		Title:       "Product Feedback",
		Description: "Tell us how the product is working for you.",
		Settings: model.SurveySettings{
			ThankYouMessage: "Thanks for your feedback!",
		},
		Questions: []model.Question{
			{
				ID:       "q_used_product",
				Type:     model.QuestionSingleChoice,
				Title:    "Have you used the product in the last month?",
				Required: true,
				Options:  []string{"Yes", "No"},
			},
			{
				ID:       "q_channel",
				Type:     model.QuestionDropdown,
				Title:    "Where do you mostly use it?",
				Required: true,
				Options:  []string{"Desktop", "Mobile", "Both"},
				Visibility: &model.VisibilityCondition{
					DependsOn:   "q_used_product",
					EqualsValue: "Yes",
				},
			},
			{
				ID:    "q_mobile_issues",
				Type:  model.QuestionLongText,
				Title: "Any issues on mobile?",
				Visibility: &model.VisibilityCondition{
					DependsOn:   "q_channel",
					EqualsValue: "Mobile",
				},
			},
			{
				ID:        "q_satisfaction",
				Type:      model.QuestionRating,
				Title:     "How satisfied are you overall?",
				Required:  true,
				MaxRating: 5,
				Visibility: &model.VisibilityCondition{
					DependsOn:   "q_used_product",
					EqualsValue: "Yes",
				},
			},
			{
				ID:    "q_why_not",
				Type:  model.QuestionMultipleChoice,
				Title: "What kept you away?",
				Options: []string{
					"No need this month",
					"Switched to another tool",
					"Too expensive",
					"Missing features",
				},
				Visibility: &model.VisibilityCondition{
					DependsOn:   "q_used_product",
					EqualsValue: "No",
				},
			},
			{
				ID:    "q_team_size",
				Type:  model.QuestionNumber,
				Title: "How many people on your team use it?",
			},
			{
				ID:    "q_contact_email",
				Type:  model.QuestionEmail,
				Title: "Email, if we may follow up",
			},
		},
	}

	// Never seed a schema the engine would refuse
	if _, schemaErrs := engine.ValidateSchema(&survey); len(schemaErrs) > 0 {
		for _, e := range schemaErrs {
			log.Printf("schema error: %v", e)
		}
		log.Fatal("seed survey failed schema validation")
	}

	oid, err := primitive.ObjectIDFromHex(survey.ID)
	if err != nil {
		log.Fatalf("Invalid seed id: %v", err)
	}
	// The repository layer keys surveys by ObjectID; keep the string field
	// empty so the document's _id stays an ObjectID.
	survey.ID = ""
	survey.CreatedAt = time.Now()
	survey.UpdatedAt = time.Now()

	if _, err := surveyColl.ReplaceOne(ctx,
		map[string]interface{}{"_id": oid},
		survey,
		options.Replace().SetUpsert(true),
	); err != nil {
		log.Fatalf("Failed to seed survey: %v", err)
	}

	fmt.Printf("Seeded survey %s (%s) for host %s\n", oid.Hex(), survey.Title, hostID)
}
