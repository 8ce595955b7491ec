// Package dynamo streams partitioning snapshots from DynamoDB.
//
// Entity-resolution pipelines that persist resolved assignments in DynamoDB
// can be compared without a CSV export step. Rows must come back with items
// sharing a group key adjacent (e.g. a table whose partition key is the
// snapshot id and whose sort key is "<group-key>#<sequence>"); like the CSV
// source, group boundaries are detected by key change only and adjacency is
// not validated.
package dynamo

import (
	"context"
	"fmt"
	"iter"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/hupe1980/slicedist/partition"
)

// Client is the subset of the DynamoDB API the source uses.
type Client interface {
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// Source reads one partitioning snapshot from a DynamoDB table.
type Source struct {
	client     Client
	table      string
	snapshotID string
	keyAttr    string
	groupAttr  string
	memberAttr string
	pageSize   int32
}

// Options configures a Source.
type Options struct {
	// KeyAttr is the table's partition key attribute holding the snapshot id.
	KeyAttr string
	// GroupAttr is the attribute holding the group key.
	GroupAttr string
	// MemberAttr is the attribute holding the member identifier.
	MemberAttr string
	// PageSize limits items per Query page. Zero uses the service default.
	PageSize int32
}

// NewSource creates a Source querying all items of one snapshot.
func NewSource(client Client, table, snapshotID string, optFns ...func(*Options)) *Source {
	opts := Options{
		KeyAttr:    "snapshot_id",
		GroupAttr:  "entity_id",
		MemberAttr: "record_id",
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	return &Source{
		client:     client,
		table:      table,
		snapshotID: snapshotID,
		keyAttr:    opts.KeyAttr,
		groupAttr:  opts.GroupAttr,
		memberAttr: opts.MemberAttr,
		pageSize:   opts.PageSize,
	}
}

// Groups implements partition.Source.
func (s *Source) Groups(ctx context.Context) iter.Seq2[partition.Group, error] {
	return func(yield func(partition.Group, error) bool) {
		input := &dynamodb.QueryInput{
			TableName:              aws.String(s.table),
			KeyConditionExpression: aws.String("#k = :snapshot"),
			ExpressionAttributeNames: map[string]string{
				"#k": s.keyAttr,
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":snapshot": &types.AttributeValueMemberS{Value: s.snapshotID},
			},
		}
		if s.pageSize > 0 {
			input.Limit = aws.Int32(s.pageSize)
		}

		var (
			cur     partition.Group
			started bool
		)

		paginator := dynamodb.NewQueryPaginator(s.client, input)
		for paginator.HasMorePages() {
			page, err := paginator.NextPage(ctx)
			if err != nil {
				yield(partition.Group{}, fmt.Errorf("query snapshot %s: %w", s.snapshotID, err))
				return
			}

			for _, item := range page.Items {
				key, ok := stringAttr(item, s.groupAttr)
				if !ok {
					yield(partition.Group{}, &AttributeError{Table: s.table, Attr: s.groupAttr})
					return
				}
				member, ok := stringAttr(item, s.memberAttr)
				if !ok {
					yield(partition.Group{}, &AttributeError{Table: s.table, Attr: s.memberAttr})
					return
				}

				switch {
				case !started:
					cur = partition.Group{Key: key, Members: []string{member}}
					started = true
				case key == cur.Key:
					cur.Members = append(cur.Members, member)
				default:
					if !yield(cur, nil) {
						return
					}
					cur = partition.Group{Key: key, Members: []string{member}}
				}
			}
		}

		if started {
			yield(cur, nil)
		}
	}
}

// AttributeError reports an item missing a required string attribute.
type AttributeError struct {
	Table string
	Attr  string
}

func (e *AttributeError) Error() string {
	return fmt.Sprintf("table %s: item missing string attribute %q", e.Table, e.Attr)
}

func stringAttr(item map[string]types.AttributeValue, name string) (string, bool) {
	switch v := item[name].(type) {
	case *types.AttributeValueMemberS:
		return v.Value, true
	case *types.AttributeValueMemberN:
		return v.Value, true
	default:
		return "", false
	}
}
