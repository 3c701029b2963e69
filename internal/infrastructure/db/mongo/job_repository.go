package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/talenthub/jobboard-api/internal/core/domain"
	"github.com/talenthub/jobboard-api/internal/core/ports"
)

const jobCollection = "jobs"

type MongoJobRepository struct {
	coll *mongo.Collection
}

func NewJobRepository(db *mongo.Database) *MongoJobRepository {
	return &MongoJobRepository{coll: db.Collection(jobCollection)}
}

type mongoJob struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Title        string             `bson:"title"`
	Company      string             `bson:"company"`
	Location     string             `bson:"location,omitempty"`
	Description  string             `bson:"description"`
	Requirements []string           `bson:"requirements,omitempty"`
	SalaryRange  string             `bson:"salary_range,omitempty"`
	PostedBy     string             `bson:"posted_by"`
	Applicants   []string           `bson:"applicants,omitempty"`
	CreatedAt    int64              `bson:"created_at"`
	UpdatedAt    int64              `bson:"updated_at"`
}

func (mj *mongoJob) toDomain() *domain.Job {
	return &domain.Job{
		ID:           mj.ID.Hex(),
		Title:        mj.Title,
		Company:      mj.Company,
		Location:     mj.Location,
		Description:  mj.Description,
		Requirements: mj.Requirements,
		SalaryRange:  mj.SalaryRange,
		PostedBy:     mj.PostedBy,
		Applicants:   mj.Applicants,
		CreatedAt:    unixToTime(mj.CreatedAt),
		UpdatedAt:    unixToTime(mj.UpdatedAt),
	}
}

func (r *MongoJobRepository) Create(ctx context.Context, job *domain.Job) (*domain.Job, error) {
	doc := mongoJob{
		Title:        job.Title,
		Company:      job.Company,
		Location:     job.Location,
		Description:  job.Description,
		Requirements: job.Requirements,
		SalaryRange:  job.SalaryRange,
		PostedBy:     job.PostedBy,
		CreatedAt:    job.CreatedAt.Unix(),
		UpdatedAt:    job.UpdatedAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert job: %w", err)
	}

	created := *job
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *MongoJobRepository) FindByID(ctx context.Context, id string) (*domain.Job, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrJobNotFound
	}

	var mj mongoJob
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mj); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrJobNotFound
		}
		return nil, fmt.Errorf("find job: %w", err)
	}
	return mj.toDomain(), nil
}

func (r *MongoJobRepository) List(ctx context.Context, filter ports.JobFilter) ([]*domain.Job, error) {
	query := bson.M{}
	if filter.Title != "" {
		query["title"] = bson.M{"$regex": filter.Title, "$options": "i"}
	}
	if filter.Company != "" {
		query["company"] = bson.M{"$regex": filter.Company, "$options": "i"}
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetSkip(filter.Offset)
	if filter.Limit > 0 {
		opts.SetLimit(filter.Limit)
	}

	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer cur.Close(ctx)

	var jobs []*domain.Job
	for cur.Next(ctx) {
		var mj mongoJob
		if err := cur.Decode(&mj); err != nil {
			return nil, fmt.Errorf("decode job: %w", err)
		}
		jobs = append(jobs, mj.toDomain())
	}
	return jobs, cur.Err()
}

func (r *MongoJobRepository) Update(ctx context.Context, job *domain.Job) error {
	oid, err := primitive.ObjectIDFromHex(job.ID)
	if err != nil {
		return domain.ErrJobNotFound
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"title":        job.Title,
		"company":      job.Company,
		"location":     job.Location,
		"description":  job.Description,
		"requirements": job.Requirements,
		"salary_range": job.SalaryRange,
		"updated_at":   time.Now().Unix(),
	}})
	if err != nil {
		return fmt.Errorf("update job: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrJobNotFound
	}
	return nil
}

func (r *MongoJobRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrJobNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrJobNotFound
	}
	return nil
}

// AddApplicant relies on $addToSet for (job, applicant) uniqueness: a matched
// but unmodified document means the pair already existed.
func (r *MongoJobRepository) AddApplicant(ctx context.Context, jobID, userID string) error {
	oid, err := primitive.ObjectIDFromHex(jobID)
	if err != nil {
		return domain.ErrJobNotFound
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid},
		bson.M{"$addToSet": bson.M{"applicants": userID}})
	if err != nil {
		return fmt.Errorf("add applicant: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrJobNotFound
	}
	if res.ModifiedCount == 0 {
		return domain.ErrAlreadyApplied
	}
	return nil
}

func (r *MongoJobRepository) RemoveApplicantFromAll(ctx context.Context, userID string) error {
	if _, err := r.coll.UpdateMany(ctx, bson.M{},
		bson.M{"$pull": bson.M{"applicants": userID}}); err != nil {
		return fmt.Errorf("remove applicant from all: %w", err)
	}
	return nil
}

func (r *MongoJobRepository) DeleteByPoster(ctx context.Context, posterID string) error {
	if _, err := r.coll.DeleteMany(ctx, bson.M{"posted_by": posterID}); err != nil {
		return fmt.Errorf("delete jobs by poster: %w", err)
	}
	return nil
}

func (r *MongoJobRepository) CountJobs(ctx context.Context) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count jobs: %w", err)
	}
	return n, nil
}

func (r *MongoJobRepository) CountApplications(ctx context.Context) (int64, error) {
	cur, err := r.coll.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$project", Value: bson.M{
			"n": bson.M{"$size": bson.M{"$ifNull": bson.A{"$applicants", bson.A{}}}},
		}}},
		{{Key: "$group", Value: bson.M{"_id": nil, "total": bson.M{"$sum": "$n"}}}},
	})
	if err != nil {
		return 0, fmt.Errorf("count applications: %w", err)
	}
	defer cur.Close(ctx)

	if cur.Next(ctx) {
		var row struct {
			Total int64 `bson:"total"`
		}
		if err := cur.Decode(&row); err != nil {
			return 0, fmt.Errorf("decode application count: %w", err)
		}
		return row.Total, nil
	}
	return 0, cur.Err()
}
