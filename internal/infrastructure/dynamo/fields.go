package dynamo

// sweepBucket is the constant partition key of the verifications sweep-index
// GSI. All pending records share it so a single Query can range over
// expires_at.
const sweepBucket = "pending"
