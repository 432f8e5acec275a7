package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"alcyxob/fitness-center/internal/domain"
	"alcyxob/fitness-center/internal/normalize"
)

const scheduleCollectionName = "class_schedules"

type scheduleDoc struct {
	ID              string      `bson:"_id"`
	Name            string      `bson:"name"`
	Day             string      `bson:"day"`
	Time            string      `bson:"time"`
	Duration        int         `bson:"duration"`
	Location        string      `bson:"location"`
	MaxParticipants int         `bson:"max_participants"`
	Level           string      `bson:"level,omitempty"`
	Description     string      `bson:"description,omitempty"`
	TrainerID       *string     `bson:"trainer_id"`
	Trainer         *trainerDoc `bson:"trainer,omitempty"` // filled by $lookup, never stored
	CreatedAt       time.Time   `bson:"created_at"`
	UpdatedAt       time.Time   `bson:"updated_at"`
}

func (d *scheduleDoc) toDomain() domain.ClassSchedule {
	s := domain.ClassSchedule{
		ID:              d.ID,
		Name:            d.Name,
		Day:             domain.Weekday(d.Day),
		Time:            d.Time,
		Duration:        d.Duration,
		Location:        d.Location,
		MaxParticipants: d.MaxParticipants,
		Level:           d.Level,
		Description:     d.Description,
		TrainerID:       d.TrainerID,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
	if d.Trainer != nil {
		t := d.Trainer.toDomain()
		s.Trainer = &t
	}
	return normalize.Schedule(s)
}

func newScheduleDoc(s *domain.ClassSchedule) (scheduleDoc, error) {
	return scheduleDoc{
		ID:              s.ID,
		Name:            s.Name,
		Day:             string(s.Day),
		Time:            s.Time,
		Duration:        s.Duration,
		Location:        s.Location,
		MaxParticipants: s.MaxParticipants,
		Level:           s.Level,
		Description:     s.Description,
		TrainerID:       s.TrainerID,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}, nil
}

// trainerJoin attaches the referenced trainer as "trainer". A dangling or
// absent reference leaves the field unset.
var trainerJoin = mongo.Pipeline{
	{{Key: "$lookup", Value: bson.D{
		{Key: "from", Value: trainerCollectionName},
		{Key: "localField", Value: "trainer_id"},
		{Key: "foreignField", Value: "_id"},
		{Key: "as", Value: "trainer"},
	}}},
	{{Key: "$unwind", Value: bson.D{
		{Key: "path", Value: "$trainer"},
		{Key: "preserveNullAndEmptyArrays", Value: true},
	}}},
}

// NewMongoScheduleRepository returns the secondary class schedule store,
// ordered by day name as stored, with the trainer joined.
func NewMongoScheduleRepository(db *mongo.Database) Mirror[domain.ClassSchedule] {
	return &collection[domain.ClassSchedule, scheduleDoc]{
		coll:     db.Collection(scheduleCollectionName),
		entity:   scheduleCollectionName,
		sort:     bson.D{{Key: "day", Value: 1}},
		joins:    trainerJoin,
		key:      func(d *scheduleDoc) string { return d.ID },
		toDomain: (*scheduleDoc).toDomain,
		toDoc:    newScheduleDoc,
	}
}
