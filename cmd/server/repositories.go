package main

import (
	mongodrv "go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"

	"alcyxob/fitness-center/internal/domain"
	"alcyxob/fitness-center/internal/repository"
	"alcyxob/fitness-center/internal/repository/mongo"
	"alcyxob/fitness-center/internal/repository/postgres"
)

// repositories ranks postgres first and, when a secondary is wired, mongo second.
type repositories struct {
	trainers    *repository.FallbackRepository[domain.Trainer]
	schedules   *repository.FallbackRepository[domain.ClassSchedule]
	mealPlans   *repository.FallbackRepository[domain.MealPlan]
	memberships *repository.FallbackRepository[domain.MembershipPlan]
	purchases   *repository.PurchaseRepository
	users       *repository.UserRepository
	exerciseLog repository.ExerciseLogRepository // nil without mongo
}

type primaryStores struct {
	trainers    repository.TrainerStore
	schedules   repository.ScheduleStore
	mealPlans   repository.MealPlanStore
	memberships repository.MembershipStore
	purchases   repository.PurchaseStore
	users       repository.UserStore
}

type secondaryStores struct {
	trainers    repository.Reader[domain.Trainer]
	schedules   repository.Reader[domain.ClassSchedule]
	mealPlans   repository.Reader[domain.MealPlan]
	memberships repository.Reader[domain.MembershipPlan]
	purchases   repository.PurchaseReader
	users       repository.UserReader
	exerciseLog repository.ExerciseLogRepository
}

func postgresStores(db *gorm.DB) primaryStores {
	return primaryStores{
		trainers:    postgres.NewTrainerRepository(db),
		schedules:   postgres.NewScheduleRepository(db),
		mealPlans:   postgres.NewMealPlanRepository(db),
		memberships: postgres.NewMembershipRepository(db),
		purchases:   postgres.NewPurchaseRepository(db),
		users:       postgres.NewUserRepository(db),
	}
}

func mongoStores(appDB *mongodrv.Database) *secondaryStores {
	return &secondaryStores{
		trainers:    mongo.NewMongoTrainerRepository(appDB),
		schedules:   mongo.NewMongoScheduleRepository(appDB),
		mealPlans:   mongo.NewMongoMealPlanRepository(appDB),
		memberships: mongo.NewMongoMembershipRepository(appDB),
		purchases:   mongo.NewMongoPurchaseRepository(appDB),
		users:       mongo.NewMongoUserRepository(appDB),
		exerciseLog: mongo.NewMongoExerciseLogRepository(appDB),
	}
}

func newRepositories(db *gorm.DB, appDB *mongodrv.Database) repositories {
	var secondary *secondaryStores
	if appDB != nil {
		secondary = mongoStores(appDB)
	}
	return rankRepositories(postgresStores(db), secondary)
}

// rankRepositories puts p ahead of s for reads. A nil s leaves the
// primary as the only source.
func rankRepositories(p primaryStores, s *secondaryStores) repositories {
	if s == nil {
		return repositories{
			trainers:    repository.NewFallbackRepository[domain.Trainer]("trainers", p.trainers),
			schedules:   repository.NewFallbackRepository[domain.ClassSchedule]("schedules", p.schedules),
			mealPlans:   repository.NewFallbackRepository[domain.MealPlan]("meal plans", p.mealPlans),
			memberships: repository.NewFallbackRepository[domain.MembershipPlan]("memberships", p.memberships),
			purchases:   repository.NewPurchaseRepository(p.purchases),
			users:       repository.NewUserRepository(p.users),
		}
	}
	return repositories{
		trainers:    repository.NewFallbackRepository[domain.Trainer]("trainers", p.trainers, s.trainers),
		schedules:   repository.NewFallbackRepository[domain.ClassSchedule]("schedules", p.schedules, s.schedules),
		mealPlans:   repository.NewFallbackRepository[domain.MealPlan]("meal plans", p.mealPlans, s.mealPlans),
		memberships: repository.NewFallbackRepository[domain.MembershipPlan]("memberships", p.memberships, s.memberships),
		purchases:   repository.NewPurchaseRepository(p.purchases, s.purchases),
		users:       repository.NewUserRepository(p.users, s.users),
		exerciseLog: s.exerciseLog,
	}
}
